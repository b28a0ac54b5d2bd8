package handler

import (
	"net/http"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/service"
)

type HabitHandler struct {
	habitService *service.HabitService
}

func NewHabitHandler(habitService *service.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

func habitsURL(view model.HabitView) string {
	return "/app/habits/view/" + string(view)
}

// List serves GET /app/habits and GET /app/habits/view/{view}.
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	view := model.HabitViewAll
	if v := r.PathValue("view"); v != "" {
		view = model.ParseHabitView(v)
	}

	habits, err := h.habitService.Habits(user.ID, view)
	if err != nil {
		writeError(w, r, err, "load habits")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":   view,
		"habits": habits,
	})
}

func (h *HabitHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	detail, err := h.habitService.Detail(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "load habit")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	_, err := h.habitService.Create(user.ID, r.FormValue("name"))
	if err != nil {
		writeError(w, r, err, "create habit")
		return
	}

	http.Redirect(w, r, "/app/habits", http.StatusSeeOther)
}

func (h *HabitHandler) ToggleEntry(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	day, err := model.ParseDay(r.PathValue("date"))
	if err != nil {
		writeError(w, r, &service.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}, "toggle entry")
		return
	}

	_, err = h.habitService.ToggleEntry(user.ID, r.PathValue("id"), day)
	if err != nil {
		writeError(w, r, err, "toggle entry")
		return
	}

	http.Redirect(w, r, "/app/habits", http.StatusSeeOther)
}

func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.habitService.Complete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "complete habit")
		return
	}

	http.Redirect(w, r, habitsURL(model.HabitViewCompleted), http.StatusSeeOther)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.habitService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "delete habit")
		return
	}

	http.Redirect(w, r, habitsURL(model.HabitViewDeleted), http.StatusSeeOther)
}

func (h *HabitHandler) Purge(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.habitService.Purge(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "purge habit")
		return
	}

	http.Redirect(w, r, habitsURL(model.HabitViewDeleted), http.StatusSeeOther)
}
