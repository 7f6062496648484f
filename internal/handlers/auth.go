package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/todo-web/internal/middleware"
	"github.com/crucial707/todo-web/internal/service"
	"github.com/crucial707/todo-web/internal/session"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth     *service.AuthService
	Sessions *session.Manager
	Views    *Renderer
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, pageLogin, PageData{})
}

func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	userID, err := h.Auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		msg := MsgInvalidCredentials
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.ErrorContext(r.Context(), "login failed", "err", err)
			msg = MsgLoginFailed
		}
		h.Views.Render(w, r, http.StatusOK, pageLogin, PageData{Message: msg})
		return
	}

	h.startSession(w, r, userID, pageLogin)
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, pageRegister, PageData{})
}

func (h *AuthHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	userID, err := h.Auth.Register(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, service.ErrPasswordTooLong):
			msg = MsgPasswordTooLong
		case errors.Is(err, service.ErrValidation):
			msg = MsgCredentialsRequired
		case errors.Is(err, service.ErrDuplicateUser):
			msg = MsgUserExists
		default:
			slog.ErrorContext(r.Context(), "register failed", "err", err)
			msg = MsgGeneric
		}
		h.Views.Render(w, r, http.StatusOK, pageRegister, PageData{Message: msg})
		return
	}

	h.startSession(w, r, userID, pageRegister)
}

// startSession binds a fresh session to userID and sends the browser to the
// dashboard. If the session cannot be stored the originating form is shown
// again with a generic message.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID int64, page string) {
	if err := h.Sessions.Create(r.Context(), w, r, userID); err != nil {
		slog.ErrorContext(r.Context(), "create session", "user_id", userID, "err", err)
		h.Views.Render(w, r, http.StatusOK, page, PageData{Message: MsgGeneric})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// ==========================
// Logout (always ends at /login)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, r); err != nil {
		slog.ErrorContext(r.Context(), "logout", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ==========================
// Change Password (session required)
// ==========================
func (h *AuthHandler) ChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, pageChangePassword, PageData{Authenticated: true})
}

func (h *AuthHandler) ChangePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	err := h.Auth.ChangePassword(r.Context(), userID, r.FormValue("oldPassword"), r.FormValue("newPassword"))
	msg := MsgPasswordUpdated
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPasswordTooLong):
		msg = MsgPasswordTooLong
	case errors.Is(err, service.ErrValidation):
		msg = MsgPasswordsRequired
	case errors.Is(err, service.ErrInvalidCredentials):
		msg = MsgOldPasswordIncorrect
	default:
		slog.ErrorContext(r.Context(), "change password", "user_id", userID, "err", err)
		msg = MsgGeneric
	}
	h.Views.Render(w, r, http.StatusOK, pageChangePassword, PageData{Message: msg, Authenticated: true})
}

// ==========================
// Forgot Password
// ==========================
func (h *AuthHandler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, pageForgotPassword, PageData{})
}

func (h *AuthHandler) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadForm(w)
		return
	}

	err := h.Auth.ResetPassword(r.Context(), r.FormValue("username"), r.FormValue("newPassword"))
	msg := MsgPasswordReset
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPasswordTooLong):
		msg = MsgPasswordTooLong
	case errors.Is(err, service.ErrValidation):
		msg = MsgResetFieldsRequired
	case errors.Is(err, service.ErrUserNotFound):
		msg = MsgUserNotFound
	default:
		slog.ErrorContext(r.Context(), "reset password", "err", err)
		msg = MsgGeneric
	}
	h.Views.Render(w, r, http.StatusOK, pageForgotPassword, PageData{Message: msg})
}
