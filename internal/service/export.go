package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/storage"
)

var ErrExportStorageDisabled = errors.New("export storage not configured")

// Export is a full copy of one user's data.
type Export struct {
	ExportedAt time.Time      `json:"exported_at"`
	Email      string         `json:"email"`
	Habits     []*ExportHabit `json:"habits"`
	Notes      []*model.Note  `json:"notes"`
	Todos      []*model.Todo  `json:"todos"`
}

type ExportHabit struct {
	*model.Habit
	Entries []*model.HabitEntry `json:"entries"`
}

type ExportService struct {
	userRepository  repository.UserRepository
	habitRepository repository.HabitRepository
	entryRepository repository.HabitEntryRepository
	noteRepository  repository.NoteRepository
	todoRepository  repository.TodoRepository
	storage         storage.Storage
	now             func() time.Time
}

// NewExportService builds the export service. store may be nil, in which case
// exports can only be streamed.
func NewExportService(
	userRepository repository.UserRepository,
	habitRepository repository.HabitRepository,
	entryRepository repository.HabitEntryRepository,
	noteRepository repository.NoteRepository,
	todoRepository repository.TodoRepository,
	store storage.Storage,
	now func() time.Time,
) *ExportService {
	return &ExportService{
		userRepository:  userRepository,
		habitRepository: habitRepository,
		entryRepository: entryRepository,
		noteRepository:  noteRepository,
		todoRepository:  todoRepository,
		storage:         store,
		now:             now,
	}
}

func (s *ExportService) HasStorage() bool {
	return s.storage != nil
}

// Build collects every habit (deleted ones included), note and to-do of the user.
func (s *ExportService) Build(userID string) (*Export, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.habitRepository.Habits(userID, model.HabitViewAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	export := &Export{
		ExportedAt: s.now().UTC(),
		Email:      user.Email,
		Habits:     make([]*ExportHabit, 0, len(habits)),
	}

	for _, habit := range habits {
		entries, err := s.entryRepository.Entries(habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for habit %s: %w", habit.ID, err)
		}
		export.Habits = append(export.Habits, &ExportHabit{Habit: habit, Entries: entries})
	}

	export.Notes, err = s.noteRepository.Notes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	export.Todos, err = s.todoRepository.Todos(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	return export, nil
}

// Publish uploads the export and returns a temporary download link.
func (s *ExportService) Publish(ctx context.Context, userID string) (string, error) {
	if s.storage == nil {
		return "", ErrExportStorageDisabled
	}

	export, err := s.Build(userID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, export.ExportedAt.Format("20060102T150405Z"))

	err = s.storage.Save(ctx, key, "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	url, err := s.storage.DownloadURL(ctx, key)
	if err != nil {
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			slog.Error("failed to delete unreachable export", "error", delErr, "key", key)
		}
		return "", err
	}

	slog.Info("export published", "user_id", userID, "key", key)
	return url, nil
}
