package views

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/bizstart/templates"
)

func TestFormatWon(t *testing.T) {
	tests := map[int]string{
		0:      "0만원",
		726:    "726만원",
		2820:   "2,820만원",
		10000:  "1억원",
		21500:  "2억 1,500만원",
		30000:  "3억원",
		123456: "12억 3,456만원",
		-1500:  "-1,500만원",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatWon(in), in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "36,500", formatNumber(36500))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "-36,500", formatNumber(-36500))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "창업", truncate("창업", 5))
	assert.Equal(t, "창업 지원…", truncate("창업 지원 센터", 5))
}

func TestTimeAgo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "방금 전", timeAgo(now.Add(-10*time.Second)))
	assert.Equal(t, "5분 전", timeAgo(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "3시간 전", timeAgo(now.Add(-3*time.Hour-time.Second)))
	assert.Equal(t, "2일 전", timeAgo(now.Add(-49*time.Hour)))

	old := time.Date(2025, 12, 24, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "2025.12.24", timeAgo(old))
}

func TestSmallHelpers(t *testing.T) {
	assert.Equal(t, "+3", signed(3))
	assert.Equal(t, "-2", signed(-2))
	assert.Equal(t, "0", signed(0))
	assert.Equal(t, "12.5%", formatRate(12.46))
	assert.Equal(t, 33, percentage(1, 3))
	assert.Equal(t, 0, percentage(5, 0))
	assert.Equal(t, []int{2, 3, 4}, seq(2, 4))
	assert.Nil(t, seq(3, 1))
	assert.Equal(t, "대체", defaultValue("", "대체"))
	assert.Equal(t, 7, defaultValue(7, 1))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"첫 문단", "둘째 줄\n이어짐", "셋째"}, paragraphs("첫 문단\r\n\r\n둘째 줄\n이어짐\n\n\n\n  셋째  "))
	assert.Nil(t, paragraphs("  \n\n "))
}

func TestNavClass(t *testing.T) {
	tests := []struct {
		current, section string
		active           bool
	}{
		{"/", "/", true},
		{"/market", "/", false},
		{"/market", "/market", true},
		{"/magazine/first-store", "/magazine", true},
		{"/mbti-result", "/mbti", false},
	}
	for _, tt := range tests {
		want := "nav-link"
		if tt.active {
			want = "nav-link active"
		}
		assert.Equal(t, want, navClass(tt.current, tt.section), tt.current)
	}
}

func TestFieldError(t *testing.T) {
	var nilData *TemplateData
	assert.Empty(t, nilData.FieldError("name"))

	data := &TemplateData{FieldErrors: map[string]string{"phone": "필수 입력 항목입니다."}}
	assert.Equal(t, "필수 입력 항목입니다.", data.FieldError("phone"))
	assert.Empty(t, data.FieldError("email"))
}

func TestEveryPageParses(t *testing.T) {
	TemplateFS = templates.FS
	pages, err := fs.Glob(templates.FS, "pages/*.gohtml")
	require.NoError(t, err)
	admin, err := fs.Glob(templates.FS, "pages/admin/*.gohtml")
	require.NoError(t, err)
	pages = append(pages, admin...)
	require.NotEmpty(t, pages)

	for _, page := range pages {
		t.Run(page, func(t *testing.T) {
			_, err := ParseFS(page)
			assert.NoError(t, err)
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.gohtml":  {Data: []byte(`{{define "base"}}<title>{{.Title}}</title>{{template "flash" .}}{{template "content" .}}{{end}}`)},
		"partials/flash.gohtml": {Data: []byte(`{{define "flash"}}{{with .Error}}<p class="error">{{.}}</p>{{end}}{{end}}`)},
		"pages/ok.gohtml":      {Data: []byte(`{{define "content"}}<h1>{{.Data}}</h1><span class="{{navClass .CurrentPath "/market"}}"></span>{{end}}`)},
		"pages/broken.gohtml":  {Data: []byte(`{{define "content"}}{{.Data.Missing}}{{end}}`)},
	}
}

func TestExecuteHTTPWithStatus(t *testing.T) {
	TemplateFS = testFS()
	t.Cleanup(func() { TemplateFS = templates.FS })

	tmpl := MustParseFS("pages/ok.gohtml")
	rec := httptest.NewRecorder()
	tmpl.ExecuteHTTPWithStatus(rec, httptest.NewRequest(http.MethodGet, "/market/snapshot", nil), http.StatusUnprocessableEntity, &TemplateData{
		Title: "상권",
		Error: "입력 내용을 확인해 주세요.",
		Data:  "<script>",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>상권</title>")
	assert.Contains(t, body, `<p class="error">입력 내용을 확인해 주세요.</p>`)
	assert.Contains(t, body, "<h1>&lt;script&gt;</h1>")
	assert.Contains(t, body, `class="nav-link active"`)
}

func TestExecuteHTTPFailureWritesNothingPartial(t *testing.T) {
	TemplateFS = testFS()
	t.Cleanup(func() { TemplateFS = templates.FS })

	tmpl := MustParseFS("pages/broken.gohtml")
	rec := httptest.NewRecorder()
	tmpl.ExecuteHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), &TemplateData{Data: 42})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<title>")
}

func TestParseFSErrors(t *testing.T) {
	TemplateFS = nil
	t.Cleanup(func() { TemplateFS = templates.FS })
	_, err := ParseFS("pages/home.gohtml")
	assert.Error(t, err)

	TemplateFS = testFS()
	_, err = ParseFS("pages/missing.gohtml")
	assert.Error(t, err)
	assert.Panics(t, func() { MustParseFS("pages/missing.gohtml") })
}

func TestExecuteWritesBase(t *testing.T) {
	TemplateFS = testFS()
	t.Cleanup(func() { TemplateFS = templates.FS })

	var buf bytes.Buffer
	require.NoError(t, MustParseFS("pages/ok.gohtml").Execute(&buf, &TemplateData{Title: "홈", Data: "안녕하세요"}))
	assert.Contains(t, buf.String(), "<h1>안녕하세요</h1>")
}
