package controllers

import (
	"net/http"

	"github.com/rahul4469/bizstart/internal/logger"
	"github.com/rahul4469/bizstart/internal/middleware"
	"github.com/rahul4469/bizstart/internal/views"
)

// AuthController handles the admin sign-in flow.
type AuthController struct {
	auth     *middleware.AdminAuth
	Template *views.Template
	log      *logger.Logger
}

func NewAuthController(auth *middleware.AdminAuth, tpl *views.Template, log *logger.Logger) *AuthController {
	return &AuthController{auth: auth, Template: tpl, log: log}
}

type LoginData struct {
	Redirect string
}

// GetLogin displays the password form.
func (ac *AuthController) GetLogin(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	redirect := middleware.SafeRedirect(r.URL.Query().Get("redirect"), "/admin")
	ac.Template.ExecuteHTTP(w, r, newPageData(w, r, "관리자 로그인", LoginData{Redirect: redirect}))
}

// PostLogin checks the password and issues the admin cookie.
func (ac *AuthController) PostLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	redirect := middleware.SafeRedirect(r.PostForm.Get("redirect"), "/admin")

	if err := ac.auth.CheckPassword(r.PostForm.Get("password")); err != nil {
		ac.log.Warn(ac.log.WithField(r.Context(), "remote_addr", r.RemoteAddr), "admin.login.failed", err)
		data := newPageData(w, r, "관리자 로그인", LoginData{Redirect: redirect})
		data.Error = "비밀번호가 올바르지 않습니다."
		ac.Template.ExecuteHTTPWithStatus(w, r, http.StatusUnauthorized, data)
		return
	}

	if err := ac.auth.SignIn(w); err != nil {
		ac.log.Error(r.Context(), "admin cookie failed", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	ac.log.Info(r.Context(), "admin.login")
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// PostLogout clears the admin cookie.
func (ac *AuthController) PostLogout(w http.ResponseWriter, r *http.Request) {
	ac.auth.SignOut(w)
	redirectWithFlash(w, r, "/", flashSuccess, "로그아웃되었습니다.")
}
