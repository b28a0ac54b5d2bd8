package model

import (
	"time"
)

// HabitWindowDays is the length of a habit's tracking window. The end date is
// start + HabitWindowDays, so a habit carries HabitWindowDays+1 daily entries.
const HabitWindowDays = 30

type Habit struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Name        string    `db:"name" json:"name"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	IsCompleted bool      `db:"is_completed" json:"is_completed"`
	IsDeleted   bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Covers reports whether day falls inside the habit's [start, end] window.
func (h *Habit) Covers(day time.Time) bool {
	day = Day(day)
	return !day.Before(Day(h.StartDate)) && !day.After(Day(h.EndDate))
}

// HabitView selects which of a user's habits a listing shows.
type HabitView string

const (
	HabitViewOngoing   HabitView = "ongoing"
	HabitViewCompleted HabitView = "completed"
	HabitViewDeleted   HabitView = "deleted"
	HabitViewAll       HabitView = "all"
)

// ParseHabitView maps a tab name to a view. Unknown names fall back to ongoing.
func ParseHabitView(s string) HabitView {
	switch v := HabitView(s); v {
	case HabitViewOngoing, HabitViewCompleted, HabitViewDeleted, HabitViewAll:
		return v
	default:
		return HabitViewOngoing
	}
}
