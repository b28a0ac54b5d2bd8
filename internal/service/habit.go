package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/report"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/validation"
)

var (
	ErrDateOutsideWindow = &ValidationError{Field: "date", Message: "date is outside the habit's 30-day window"}
	ErrHabitNotDeleted   = &ValidationError{Message: "only deleted habits can be purged"}
)

// HabitListItem is a habit with its completion rate, as shown in listings.
type HabitListItem struct {
	*model.Habit
	CompletionRate float64 `json:"completion_rate"`
}

// HabitDetail is a single habit with its entries and computed statistics.
type HabitDetail struct {
	Habit   *model.Habit        `json:"habit"`
	Entries []*model.HabitEntry `json:"entries"`
	Stats   report.HabitStats   `json:"stats"`
}

type HabitService struct {
	repo      repository.HabitRepository
	entryRepo repository.HabitEntryRepository
	loc       *time.Location
	now       func() time.Time
}

func NewHabitService(
	repo repository.HabitRepository,
	entryRepo repository.HabitEntryRepository,
	loc *time.Location,
	now func() time.Time,
) *HabitService {
	return &HabitService{
		repo:      repo,
		entryRepo: entryRepo,
		loc:       loc,
		now:       now,
	}
}

// today is the current calendar day in the configured location.
func (s *HabitService) today() time.Time {
	return model.Day(s.now().In(s.loc))
}

// Create starts a habit today and lays out one uncompleted entry for every
// day of its window.
func (s *HabitService) Create(userID, name string) (*model.Habit, error) {
	err := validation.ValidateHabitName(name)
	if err != nil {
		return nil, invalid("name", err)
	}

	start := s.today()
	habit := &model.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      normalizeSpace(name),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, model.HabitWindowDays),
		CreatedAt: s.now().UTC(),
	}

	err = s.repo.Create(habit)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	err = s.entryRepo.CreateRange(habit.ID, habit.StartDate, habit.EndDate)
	if err != nil {
		// Rollback: delete the habit if entries creation fails
		delErr := s.repo.Delete(userID, habit.ID)
		if delErr != nil {
			slog.Error("failed to delete habit during rollback", "error", delErr, "habit_id", habit.ID)
		}
		return nil, fmt.Errorf("failed to create habit entries: %w", err)
	}

	slog.Info("habit created", "user_id", userID, "habit_id", habit.ID)
	return habit, nil
}

func (s *HabitService) Habits(userID string, view model.HabitView) ([]*HabitListItem, error) {
	habits, err := s.repo.Habits(userID, view)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	items := make([]*HabitListItem, 0, len(habits))
	for _, habit := range habits {
		completed, total, err := s.entryRepo.Counts(habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count entries for habit %s: %w", habit.ID, err)
		}

		items = append(items, &HabitListItem{
			Habit:          habit,
			CompletionRate: report.Round1(report.CompletionRate(completed, total)),
		})
	}

	return items, nil
}

func (s *HabitService) Detail(userID, habitID string) (*HabitDetail, error) {
	// Verify ownership
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.Entries(habitID)
	if err != nil {
		return nil, err
	}

	return &HabitDetail{
		Habit:   habit,
		Entries: entries,
		Stats:   report.Aggregate(habit, entries),
	}, nil
}

// ToggleEntry flips completion for one day of the habit's window.
func (s *HabitService) ToggleEntry(userID, habitID string, day time.Time) (*model.HabitEntry, error) {
	// Verify ownership
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	if !habit.Covers(day) {
		return nil, ErrDateOutsideWindow
	}

	return s.entryRepo.Toggle(habitID, day)
}

func (s *HabitService) Complete(userID, habitID string) error {
	return s.repo.MarkCompleted(userID, habitID)
}

func (s *HabitService) Delete(userID, habitID string) error {
	return s.repo.MarkDeleted(userID, habitID)
}

// Purge permanently removes a habit that was already deleted, entries included.
func (s *HabitService) Purge(userID, habitID string) error {
	habit, err := s.repo.ByID(userID, habitID)
	if err != nil {
		return err
	}

	if !habit.IsDeleted {
		return ErrHabitNotDeleted
	}

	err = s.repo.Delete(userID, habitID)
	if err != nil {
		return fmt.Errorf("failed to purge habit: %w", err)
	}

	slog.Info("habit purged", "user_id", userID, "habit_id", habitID)
	return nil
}
