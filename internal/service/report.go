package service

import (
	"fmt"

	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/report"
	"github.com/streakly/streakly/internal/repository"
)

type ReportService struct {
	repo      repository.HabitRepository
	entryRepo repository.HabitEntryRepository
}

func NewReportService(repo repository.HabitRepository, entryRepo repository.HabitEntryRepository) *ReportService {
	return &ReportService{
		repo:      repo,
		entryRepo: entryRepo,
	}
}

// Report analyses the user's ongoing habits in full and counts the completed
// ones. Deleted habits are left out.
func (s *ReportService) Report(userID string) (*report.Report, error) {
	ongoing, err := s.repo.Habits(userID, model.HabitViewOngoing)
	if err != nil {
		return nil, fmt.Errorf("failed to list ongoing habits: %w", err)
	}

	completed, err := s.repo.Habits(userID, model.HabitViewCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed habits: %w", err)
	}

	stats := make([]report.HabitStats, 0, len(ongoing))
	for _, habit := range ongoing {
		entries, err := s.entryRepo.Entries(habit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for habit %s: %w", habit.ID, err)
		}
		stats = append(stats, report.Aggregate(habit, entries))
	}

	r := report.Compose(stats, len(completed))
	return &r, nil
}
