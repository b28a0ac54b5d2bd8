package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/db/dbtest"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/service"
)

// 10:00:30 UTC on 1 June 2025.
var testNow = time.Date(2025, 6, 1, 10, 0, 30, 0, time.UTC)

func clock() time.Time { return testNow }

type fakeQueue struct {
	mu    sync.Mutex
	count int
	err   error
}

func (q *fakeQueue) Schedule(ctx context.Context, todoID string, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.count++
	return nil
}

func createUser(t *testing.T, conn *sqlx.DB, email string) *model.User {
	t.Helper()
	user := &model.User{ID: uuid.New().String(), Email: email, CreatedAt: testNow}
	err := repository.NewUserRepository(conn).Create(user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func formRequest(method, target string, user *model.User, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req = req.WithContext(ctxkeys.WithUser(req.Context(), user))
	}
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	err := json.Unmarshal(rec.Body.Bytes(), v)
	if err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func newTodoHandler(t *testing.T, q *fakeQueue) (*TodoHandler, *sqlx.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	todos := repository.NewTodoRepository(conn)
	return NewTodoHandler(service.NewTodoService(todos, q, time.UTC, clock)), conn
}

func TestTodoCreate(t *testing.T) {
	q := &fakeQueue{}
	h, conn := newTodoHandler(t, q)
	user := createUser(t, conn, "ada@example.com")

	rec := httptest.NewRecorder()
	h.Create(rec, formRequest(http.MethodPost, "/app/todos", user, url.Values{
		"task":     {"Buy milk"},
		"deadline": {"2025-06-02T09:00"},
		"reminder": {"2025-06-01T10:30"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		Task    string `json:"task"`
		Status  string `json:"status"`
	}
	decode(t, rec, &body)

	if !body.Success || body.ID == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Task != "Buy milk" || body.Status != model.TodoStatusPending {
		t.Fatalf("unexpected todo: %+v", body)
	}
	if q.count != 1 {
		t.Fatalf("expected one scheduled reminder, got %d", q.count)
	}
}

func TestTodoCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing task", url.Values{"deadline": {"2025-06-02T09:00"}, "reminder": {"2025-06-01T10:30"}}},
		{"deadline in past", url.Values{"task": {"x"}, "deadline": {"2025-05-30T09:00"}, "reminder": {"2025-06-01T10:30"}}},
		{"bad reminder", url.Values{"task": {"x"}, "deadline": {"2025-06-02T09:00"}, "reminder": {"tomorrow"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &fakeQueue{}
			h, conn := newTodoHandler(t, q)
			user := createUser(t, conn, "ada@example.com")

			rec := httptest.NewRecorder()
			h.Create(rec, formRequest(http.MethodPost, "/app/todos", user, tt.form))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}

			var body errorResponse
			decode(t, rec, &body)
			if body.Success || body.Error == "" {
				t.Fatalf("unexpected body: %+v", body)
			}
			if q.count != 0 {
				t.Fatal("expected nothing scheduled")
			}
		})
	}
}

func TestTodoCreateReminderNotScheduled(t *testing.T) {
	q := &fakeQueue{err: errors.New("queue down")}
	h, conn := newTodoHandler(t, q)
	user := createUser(t, conn, "ada@example.com")

	rec := httptest.NewRecorder()
	h.Create(rec, formRequest(http.MethodPost, "/app/todos", user, url.Values{
		"task":     {"Buy milk"},
		"deadline": {"2025-06-02T09:00"},
		"reminder": {"2025-06-01T10:30"},
	}))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	decode(t, rec, &body)
	if body.Success || body.ID == "" {
		t.Fatalf("unexpected body: %+v", body)
	}

	todos, err := repository.NewTodoRepository(conn).Todos(user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected the to-do to be kept, got %d", len(todos))
	}
}

func TestTodoDetailToggleAndDelete(t *testing.T) {
	h, conn := newTodoHandler(t, &fakeQueue{})
	user := createUser(t, conn, "ada@example.com")
	other := createUser(t, conn, "bob@example.com")

	todo := &model.Todo{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Task:      "Call mom",
		Deadline:  testNow.Add(24 * time.Hour),
		Reminder:  testNow.Add(time.Hour),
		Status:    model.TodoStatusPending,
		CreatedAt: testNow,
	}
	err := repository.NewTodoRepository(conn).Create(todo)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := formRequest(http.MethodGet, "/app/todos/"+todo.ID, user, nil)
	req.SetPathValue("id", todo.ID)
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	var detail model.Todo
	decode(t, rec, &detail)
	if detail.ID != todo.ID || detail.Task != "Call mom" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	req = formRequest(http.MethodGet, "/app/todos/"+todo.ID, other, nil)
	req.SetPathValue("id", todo.ID)
	rec = httptest.NewRecorder()
	h.Detail(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 reading another user's to-do, got %d", rec.Code)
	}

	req = formRequest(http.MethodPost, "/app/todos/"+todo.ID+"/status", user, nil)
	req.SetPathValue("id", todo.ID)
	rec = httptest.NewRecorder()
	h.ToggleStatus(rec, req)

	var toggled struct {
		Success bool   `json:"success"`
		Status  string `json:"status"`
	}
	decode(t, rec, &toggled)
	if !toggled.Success || toggled.Status != model.TodoStatusCompleted {
		t.Fatalf("unexpected toggle response: %+v", toggled)
	}

	req = formRequest(http.MethodPost, "/app/todos/"+todo.ID+"/delete", other, nil)
	req.SetPathValue("id", todo.ID)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting another user's to-do, got %d", rec.Code)
	}

	req = formRequest(http.MethodPost, "/app/todos/"+todo.ID+"/delete", user, nil)
	req.SetPathValue("id", todo.ID)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func newHabitHandler(t *testing.T) (*HabitHandler, *model.User) {
	t.Helper()
	conn := dbtest.Open(t)
	user := createUser(t, conn, "ada@example.com")
	svc := service.NewHabitService(
		repository.NewHabitRepository(conn),
		repository.NewHabitEntryRepository(conn),
		time.UTC,
		clock,
	)
	return NewHabitHandler(svc), user
}

func TestHabitCreateAndList(t *testing.T) {
	h, user := newHabitHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, formRequest(http.MethodPost, "/app/habits", user, url.Values{"name": {"  Read   daily "}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/app/habits" {
		t.Fatalf("unexpected redirect %q", loc)
	}

	rec = httptest.NewRecorder()
	h.List(rec, formRequest(http.MethodGet, "/app/habits", user, nil))

	var body struct {
		View   string `json:"view"`
		Habits []struct {
			ID             string  `json:"id"`
			Name           string  `json:"name"`
			CompletionRate float64 `json:"completion_rate"`
		} `json:"habits"`
	}
	decode(t, rec, &body)

	if body.View != string(model.HabitViewAll) {
		t.Fatalf("expected default view all, got %q", body.View)
	}
	if len(body.Habits) != 1 || body.Habits[0].Name != "Read daily" {
		t.Fatalf("unexpected habits: %+v", body.Habits)
	}
	if body.Habits[0].CompletionRate != 0 {
		t.Fatalf("expected 0 completion rate, got %v", body.Habits[0].CompletionRate)
	}

	// Toggle today, then delete.
	id := body.Habits[0].ID
	req := formRequest(http.MethodPost, "/app/habits/"+id+"/entries/2025-06-01/toggle", user, nil)
	req.SetPathValue("id", id)
	req.SetPathValue("date", "2025-06-01")
	rec = httptest.NewRecorder()
	h.ToggleEntry(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after toggle, got %d: %s", rec.Code, rec.Body.String())
	}

	req = formRequest(http.MethodPost, "/app/habits/"+id+"/delete", user, nil)
	req.SetPathValue("id", id)
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if loc := rec.Header().Get("Location"); loc != "/app/habits/view/deleted" {
		t.Fatalf("unexpected redirect %q", loc)
	}
}

func TestHabitCreateRejectsEmptyName(t *testing.T) {
	h, user := newHabitHandler(t)

	rec := httptest.NewRecorder()
	h.Create(rec, formRequest(http.MethodPost, "/app/habits", user, url.Values{"name": {"   "}}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body errorResponse
	decode(t, rec, &body)
	if body.Field != "name" {
		t.Fatalf("expected field name, got %+v", body)
	}
}

func TestHabitToggleRejectsBadDate(t *testing.T) {
	h, user := newHabitHandler(t)

	req := formRequest(http.MethodPost, "/app/habits/x/entries/june/toggle", user, nil)
	req.SetPathValue("id", "x")
	req.SetPathValue("date", "june")
	rec := httptest.NewRecorder()
	h.ToggleEntry(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHabitDetailNotFound(t *testing.T) {
	h, user := newHabitHandler(t)

	req := formRequest(http.MethodGet, "/app/habits/missing", user, nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.Detail(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWriteErrorHidesUnexpectedErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/app/reports", nil)
	rec := httptest.NewRecorder()
	writeError(rec, req, errors.New("connection refused at 10.0.0.3"), "build report")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Fatal("internal error leaked into the response")
	}
}
