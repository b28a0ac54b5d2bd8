package handler

import (
	"log/slog"
	"net/http"

	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Register(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		writeError(w, r, err, "register")
		return
	}

	h.startSession(w, r, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Login(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		slog.Info("login failed", "error", err)
		writeError(w, r, err, "log in")
		return
	}

	h.startSession(w, r, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeError(w, r, err, "create session")
		return
	}

	h.authService.SetJWTCookie(w, token, h.authService.SessionExpiry())
	http.Redirect(w, r, "/app/habits", http.StatusSeeOther)
}
