package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rahul4469/bizstart/internal/logger"
)

// TemplateFS holds layouts/, partials/ and pages/. Set it before ParseFS.
var TemplateFS fs.FS

// Log receives template execution errors. Defaults to a no-op logger.
var Log = logger.Nop()

// Template wraps a parsed template with helper methods for rendering.
type Template struct {
	tmpl *template.Template
}

// TemplateData is the standard data structure passed to all templates.
type TemplateData struct {
	// True when the visitor holds an admin session
	IsAdmin bool

	// CSRF token for forms
	CSRFToken string

	// Flash messages
	Error   string
	Success string
	Warning string
	Info    string

	// Field level validation messages keyed by form field name
	FieldErrors map[string]string

	// Page-specific data
	Data any

	Title       string
	Description string

	// Request info for active nav highlighting
	CurrentPath string
}

// FieldError returns the message for one form field.
func (d *TemplateData) FieldError(name string) string {
	if d == nil || d.FieldErrors == nil {
		return ""
	}
	return d.FieldErrors[name]
}

// DefaultFuncMap returns the functions available in every template.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"trim":     strings.TrimSpace,
		"truncate": truncate,

		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"timeAgo":        timeAgo,

		"formatNumber": formatNumber,
		"formatWon":    formatWon,
		"formatRate":   formatRate,
		"signed":       signed,
		"percentage":   percentage,

		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"lt":  func(a, b int) bool { return a < b },
		"gt":  func(a, b int) bool { return a > b },

		"contains":   strings.Contains,
		"hasPrefix":  strings.HasPrefix,
		"join":       strings.Join,
		"paragraphs": paragraphs,
		"default":    defaultValue,
		"seq":        seq,
		"navClass":   navClass,
	}
}

// ParseFS parses the base layout, every partial and the requested pages.
//
//	tmpl, err := views.ParseFS("pages/home.gohtml")
func ParseFS(patterns ...string) (*Template, error) {
	if TemplateFS == nil {
		return nil, fmt.Errorf("views: TemplateFS is not set")
	}
	tmpl := template.New("").Funcs(DefaultFuncMap())

	baseContent, err := fs.ReadFile(TemplateFS, "layouts/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to read base template: %w", err)
	}
	tmpl, err = tmpl.Parse(string(baseContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	partialMatches, err := fs.Glob(TemplateFS, "partials/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}
	for _, match := range partialMatches {
		content, err := fs.ReadFile(TemplateFS, match)
		if err != nil {
			return nil, fmt.Errorf("failed to read partial %s: %w", match, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse partial %s: %w", match, err)
		}
	}

	// Pages define "content" and are rendered through "base".
	for _, pattern := range patterns {
		content, err := fs.ReadFile(TemplateFS, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", pattern, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", pattern, err)
		}
	}

	return &Template{tmpl: tmpl}, nil
}

// MustParseFS is like ParseFS but panics on error.
func MustParseFS(patterns ...string) *Template {
	tmpl, err := ParseFS(patterns...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse templates: %v", err))
	}
	return tmpl
}

// Execute renders the template to the given writer with the provided data.
func (t *Template) Execute(w io.Writer, data *TemplateData) error {
	return t.tmpl.ExecuteTemplate(w, "base", data)
}

// ExecuteHTTP renders the template as a 200 response.
func (t *Template) ExecuteHTTP(w http.ResponseWriter, r *http.Request, data *TemplateData) {
	t.ExecuteHTTPWithStatus(w, r, http.StatusOK, data)
}

// ExecuteHTTPWithStatus renders into a buffer first so a failing template
// never leaves a half-written page.
func (t *Template) ExecuteHTTPWithStatus(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	if data == nil {
		data = &TemplateData{}
	}
	data.CurrentPath = r.URL.Path

	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		Log.Error(r.Context(), "template execution failed", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func truncate(s string, length int) string {
	if utf8.RuneCountInString(s) <= length {
		return s
	}
	r := []rune(s)
	return string(r[:length]) + "…"
}

func formatDate(t time.Time) string {
	return t.Format("2006.01.02")
}

func formatDateTime(t time.Time) string {
	return t.Format("2006.01.02 15:04")
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "방금 전"
	case d < time.Hour:
		return fmt.Sprintf("%d분 전", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d일 전", int(d.Hours()/24))
	default:
		return formatDate(t)
	}
}

// formatNumber inserts thousands separators: 36500 -> 36,500.
func formatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatWon renders an amount in 만원 the way Korean listings do:
// 2820 -> "2,820만원", 21500 -> "2억 1,500만원", 30000 -> "3억원".
func formatWon(manwon int) string {
	if manwon < 0 {
		return "-" + formatWon(-manwon)
	}
	eok, rest := manwon/10000, manwon%10000
	switch {
	case eok == 0:
		return formatNumber(rest) + "만원"
	case rest == 0:
		return formatNumber(eok) + "억원"
	default:
		return formatNumber(eok) + "억 " + formatNumber(rest) + "만원"
	}
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func percentage(value, total int) int {
	if total == 0 {
		return 0
	}
	return (value * 100) / total
}

// paragraphs splits plain text on blank lines for safe <p> rendering.
func paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultValue(value, defaultVal any) any {
	if value == nil || value == "" || value == 0 {
		return defaultVal
	}
	return value
}

func seq(start, end int) []int {
	if end < start {
		return nil
	}
	result := make([]int, end-start+1)
	for i := range result {
		result[i] = start + i
	}
	return result
}

// navClass highlights the nav entry whose section contains the current path.
func navClass(current, section string) string {
	active := current == section || (section != "/" && strings.HasPrefix(current, section+"/"))
	if active {
		return "nav-link active"
	}
	return "nav-link"
}
