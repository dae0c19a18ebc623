package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahul4469/bizstart/context"
	"github.com/rahul4469/bizstart/internal/models"
)

var ErrInvalidPassword = errors.New("invalid admin password")

// AdminAuthConfig configures the single-operator admin gate.
type AdminAuthConfig struct {
	PasswordHash string
	HashKey      []byte
	CookieName   string
	Duration     time.Duration
	Secure       bool
}

// adminCookie is the signed cookie payload.
type adminCookie struct {
	IssuedAt int64
}

// AdminAuth checks the admin password and keeps the admin signed in with a
// signed, expiring cookie.
type AdminAuth struct {
	passwordHash []byte
	codec        *securecookie.SecureCookie
	cookieName   string
	duration     time.Duration
	secure       bool
	now          func() time.Time
}

func NewAdminAuth(cfg AdminAuthConfig) *AdminAuth {
	codec := securecookie.New(cfg.HashKey, nil)
	codec.MaxAge(int(cfg.Duration.Seconds()))
	return &AdminAuth{
		passwordHash: []byte(cfg.PasswordHash),
		codec:        codec,
		cookieName:   cfg.CookieName,
		duration:     cfg.Duration,
		secure:       cfg.Secure,
		now:          time.Now,
	}
}

// CheckPassword compares a login attempt with the configured bcrypt hash.
func (a *AdminAuth) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// SignIn writes a fresh admin cookie.
func (a *AdminAuth) SignIn(w http.ResponseWriter) error {
	now := a.now()
	encoded, err := a.codec.Encode(a.cookieName, adminCookie{IssuedAt: now.Unix()})
	if err != nil {
		return fmt.Errorf("encode admin cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  now.Add(a.duration),
		MaxAge:   int(a.duration.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SignOut deletes the admin cookie.
func (a *AdminAuth) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *AdminAuth) session(r *http.Request) (*models.AdminSession, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil {
		return nil, err
	}
	var payload adminCookie
	if err := a.codec.Decode(a.cookieName, cookie.Value, &payload); err != nil {
		return nil, err
	}
	issued := time.Unix(payload.IssuedAt, 0)
	session := &models.AdminSession{IssuedAt: issued, ExpiresAt: issued.Add(a.duration)}
	if session.Expired(a.now()) {
		return nil, errors.New("admin session expired")
	}
	return session, nil
}

// SetAdmin loads the admin session into the request context when the cookie
// is valid. It never blocks; an invalid cookie is cleared.
func (a *AdminAuth) SetAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(a.cookieName); err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := a.session(r)
		if err != nil {
			a.SignOut(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.ContextSetAdmin(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin redirects visitors without an admin session to the login page,
// remembering where they were going.
func (a *AdminAuth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if context.ContextGetAdmin(r.Context()) == nil {
			target := "/admin/login"
			if r.URL.Path != "/admin" && r.Method == http.MethodGet {
				target += "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeRedirect returns target when it is a local admin path and fallback
// otherwise, so the login form cannot be used as an open redirect.
func SafeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/admin") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return fallback
	}
	if u, err := url.Parse(target); err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return target
}

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(r *http.Request) bool {
	return context.ContextGetAdmin(r.Context()) != nil
}
