package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/rahul4469/bizstart/internal/middleware"
	"github.com/rahul4469/bizstart/internal/views"
)

const (
	CookieFlash = "bizstart_flash"

	flashSuccess = "success"
	flashError   = "error"
)

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieFlash,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and deletes the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) (kind, message string) {
	cookie, err := r.Cookie(CookieFlash)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieFlash,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return "", ""
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return "", ""
	}
	return kind, message
}

// newPageData fills the fields every page needs and consumes any flash.
func newPageData(w http.ResponseWriter, r *http.Request, title string, data any) *views.TemplateData {
	td := &views.TemplateData{
		Title:     title,
		CSRFToken: csrf.Token(r),
		IsAdmin:   middleware.IsAdmin(r),
		Data:      data,
	}
	switch kind, msg := popFlash(w, r); kind {
	case flashSuccess:
		td.Success = msg
	case flashError:
		td.Error = msg
	}
	return td
}

// redirectWithFlash is the post/redirect/get tail of every form handler.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	setFlash(w, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
