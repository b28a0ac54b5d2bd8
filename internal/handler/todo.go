package handler

import (
	"errors"
	"net/http"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/service"
)

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

type todoResponse struct {
	Success bool `json:"success"`
	*model.Todo
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	todos, err := h.todoService.Todos(user.ID)
	if err != nil {
		writeError(w, r, err, "load todos")
		return
	}
	if todos == nil {
		todos = []*model.Todo{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
}

func (h *TodoHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	todo, err := h.todoService.Todo(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "load todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	todo, err := h.todoService.Create(r.Context(), user.ID,
		r.FormValue("task"),
		r.FormValue("deadline"),
		r.FormValue("reminder"),
	)
	if errors.Is(err, service.ErrReminderNotScheduled) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"id":      todo.ID,
			"error":   "to-do saved, but its reminder could not be scheduled",
		})
		return
	}
	if err != nil {
		writeError(w, r, err, "create todo")
		return
	}

	writeJSON(w, http.StatusOK, todoResponse{Success: true, Todo: todo})
}

func (h *TodoHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	status, err := h.todoService.ToggleStatus(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "update todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status":  status,
	})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.todoService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "delete todo")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
