package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/queue"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/validation"
)

// TodoTimeLayout is the format of deadline and reminder form values
// (an HTML datetime-local input).
const TodoTimeLayout = "2006-01-02T15:04"

// pastGrace is how far in the past a deadline or reminder may lie and still
// be accepted, so a form submitted in the same minute it was filled is valid.
const pastGrace = time.Minute

var (
	ErrTodoFieldsRequired   = &ValidationError{Message: "task, deadline and reminder are required"}
	ErrDeadlineInPast       = &ValidationError{Field: "deadline", Message: "deadline cannot be in the past"}
	ErrReminderInPast       = &ValidationError{Field: "reminder", Message: "reminder cannot be in the past"}
	ErrReminderNotScheduled = errors.New("reminder could not be scheduled")
)

type TodoService struct {
	repo  repository.TodoRepository
	queue queue.Queue
	loc   *time.Location
	now   func() time.Time
}

func NewTodoService(repo repository.TodoRepository, q queue.Queue, loc *time.Location, now func() time.Time) *TodoService {
	return &TodoService{
		repo:  repo,
		queue: q,
		loc:   loc,
		now:   now,
	}
}

// Create saves a pending to-do and schedules its reminder. When scheduling
// fails the to-do is kept and the returned error wraps ErrReminderNotScheduled.
func (s *TodoService) Create(ctx context.Context, userID, task, deadlineValue, reminderValue string) (*model.Todo, error) {
	task = strings.TrimSpace(task)
	deadlineValue = strings.TrimSpace(deadlineValue)
	reminderValue = strings.TrimSpace(reminderValue)

	if task == "" || deadlineValue == "" || reminderValue == "" {
		return nil, ErrTodoFieldsRequired
	}

	err := validation.MaxLength("task", task, validation.MaxTitleLength)
	if err != nil {
		return nil, invalid("task", err)
	}

	deadline, err := time.ParseInLocation(TodoTimeLayout, deadlineValue, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "deadline", Message: "invalid deadline format"}
	}

	reminder, err := time.ParseInLocation(TodoTimeLayout, reminderValue, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "reminder", Message: "invalid reminder format"}
	}

	now := s.now()
	earliest := now.Truncate(time.Minute).Add(-pastGrace)
	if deadline.Before(earliest) {
		return nil, ErrDeadlineInPast
	}
	if reminder.Before(earliest) {
		return nil, ErrReminderInPast
	}

	todo := &model.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Task:      task,
		Deadline:  deadline.UTC(),
		Reminder:  reminder.UTC(),
		Status:    model.TodoStatusPending,
		CreatedAt: now.UTC(),
	}

	err = s.repo.Create(todo)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	delay := max(reminder.Sub(now), 0)
	err = s.queue.Schedule(ctx, todo.ID, delay)
	if err != nil {
		slog.Error("failed to schedule reminder", "error", err, "todo_id", todo.ID)
		return todo, fmt.Errorf("%w: %w", ErrReminderNotScheduled, err)
	}

	slog.Info("todo created", "user_id", userID, "todo_id", todo.ID, "reminder_in", delay)
	return todo, nil
}

// Todos lists the user's to-dos, soonest deadline first.
func (s *TodoService) Todos(userID string) ([]*model.Todo, error) {
	return s.repo.Todos(userID)
}

// Todo returns one of the user's to-dos.
func (s *TodoService) Todo(userID, todoID string) (*model.Todo, error) {
	return s.repo.ByID(userID, todoID)
}

// ToggleStatus flips a to-do between pending and completed. A reminder that
// fires while the to-do is completed sends nothing.
func (s *TodoService) ToggleStatus(userID, todoID string) (string, error) {
	return s.repo.ToggleStatus(userID, todoID)
}

func (s *TodoService) Delete(userID, todoID string) error {
	return s.repo.Delete(userID, todoID)
}
