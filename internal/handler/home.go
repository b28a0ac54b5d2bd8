package handler

import (
	"net/http"
)

type HomeHandler struct {
	appName string
}

func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   h.appName,
		"habits": "/app/habits",
		"notes":  "/app/notes",
		"todos":  "/app/todos",
	})
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}
