package report

import (
	"math"

	"github.com/streakly/streakly/internal/model"
)

// HabitStats is the per-habit record shown in listings and reports.
type HabitStats struct {
	HabitID        string  `json:"habit_id"`
	Name           string  `json:"name"`
	IsCompleted    bool    `json:"is_completed"`
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
	Streaks        []int   `json:"streaks"`
	HighestStreak  int     `json:"highest_streak"`
}

// Aggregate computes completion and streak figures for one habit.
// entries must be sorted by date ascending.
func Aggregate(habit *model.Habit, entries []*model.HabitEntry) HabitStats {
	completed := 0
	for _, entry := range entries {
		if entry.Completed {
			completed++
		}
	}

	streaks := Streaks(entries)
	if streaks == nil {
		streaks = []int{}
	}

	return HabitStats{
		HabitID:        habit.ID,
		Name:           habit.Name,
		IsCompleted:    habit.IsCompleted,
		CompletedDays:  completed,
		TotalDays:      len(entries),
		CompletionRate: Round1(CompletionRate(completed, len(entries))),
		Streaks:        streaks,
		HighestStreak:  HighestStreak(streaks),
	}
}

// CompletionRate returns completed/total as a percentage, or 0 when total is 0.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
