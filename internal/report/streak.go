// Package report derives habit statistics: streaks, completion rates, and the
// per-user report with its summary and milestone badges.
package report

import (
	"time"

	"github.com/streakly/streakly/internal/model"
)

// Streaks returns the length of every run of consecutive completed days, in
// date order. entries must be sorted by date ascending. A day with no entry
// breaks a run just like an uncompleted one.
func Streaks(entries []*model.HabitEntry) []int {
	var streaks []int
	run := 0
	var prev time.Time

	for i, entry := range entries {
		day := model.Day(entry.Date)
		if i > 0 && daysBetween(prev, day) > 1 {
			if run > 0 {
				streaks = append(streaks, run)
			}
			run = 0
		}

		if entry.Completed {
			run++
		} else if run > 0 {
			streaks = append(streaks, run)
			run = 0
		}
		prev = day
	}

	if run > 0 {
		streaks = append(streaks, run)
	}

	return streaks
}

// HighestStreak returns the longest streak, or 0 if there is none.
func HighestStreak(streaks []int) int {
	highest := 0
	for _, s := range streaks {
		highest = max(highest, s)
	}
	return highest
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
