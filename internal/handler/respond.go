package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// errorResponse is the body of every failed JSON request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// writeError maps service and repository errors to a status code and a
// message that is safe to show. Unexpected errors are logged and hidden.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, repository.ErrHabitNotFound),
		errors.Is(err, repository.ErrNoteNotFound),
		errors.Is(err, repository.ErrTodoNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "an account with this email already exists"})
	default:
		slog.Error("request failed", "error", err, "action", action, "path", r.URL.Path, "method", r.Method)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to " + action})
	}
}
