package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/streakly/streakly/internal/repository"
)

// Outcome is what a reminder dispatch did.
type Outcome string

const (
	OutcomeSent       Outcome = "sent"
	OutcomeMissing    Outcome = "missing"
	OutcomeNotPending Outcome = "not_pending"
	OutcomeFailed     Outcome = "failed"
)

type ReminderConfig struct {
	AppName  string
	AppURL   string
	Location *time.Location
}

// ReminderDispatcher delivers the reminder for a to-do when its job fires.
// The to-do is re-read at that point: a deleted or completed to-do is skipped.
type ReminderDispatcher struct {
	todoRepository repository.TodoRepository
	userRepository repository.UserRepository
	mailer         Mailer
	cfg            ReminderConfig
}

func NewReminderDispatcher(
	todoRepository repository.TodoRepository,
	userRepository repository.UserRepository,
	mailer Mailer,
	cfg ReminderConfig,
) *ReminderDispatcher {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ReminderDispatcher{
		todoRepository: todoRepository,
		userRepository: userRepository,
		mailer:         mailer,
		cfg:            cfg,
	}
}

// Dispatch never returns an error; failures are logged and the reminder is dropped.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, todoID string) Outcome {
	todo, err := d.todoRepository.Get(todoID)
	if errors.Is(err, repository.ErrTodoNotFound) {
		slog.Info("reminder skipped, todo no longer exists", "todo_id", todoID)
		return OutcomeMissing
	}
	if err != nil {
		slog.Error("failed to load todo for reminder", "error", err, "todo_id", todoID)
		return OutcomeFailed
	}

	if !todo.IsPending() {
		slog.Info("reminder skipped, todo not pending", "todo_id", todoID, "status", todo.Status)
		return OutcomeNotPending
	}

	user, err := d.userRepository.ByID(todo.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		slog.Info("reminder skipped, owner no longer exists", "todo_id", todoID, "user_id", todo.UserID)
		return OutcomeMissing
	}
	if err != nil {
		slog.Error("failed to load reminder recipient", "error", err, "todo_id", todoID, "user_id", todo.UserID)
		return OutcomeFailed
	}

	todosURL := strings.TrimSuffix(d.cfg.AppURL, "/") + "/app/todos"
	subject, body := reminderEmailTemplate(todo.Task, todo.Deadline.In(d.cfg.Location), todosURL, d.cfg.AppName)

	err = d.mailer.Send(ctx, user.Email, subject, body)
	if err != nil {
		slog.Error("failed to send reminder", "error", err, "todo_id", todoID, "user_id", user.ID)
		return OutcomeFailed
	}

	slog.Info("reminder sent", "todo_id", todoID, "user_id", user.ID)
	return OutcomeSent
}

// Handle adapts Dispatch to a queue handler.
func (d *ReminderDispatcher) Handle(ctx context.Context, todoID string) {
	d.Dispatch(ctx, todoID)
}
