package model

import (
	"time"
)

const DateLayout = "2006-01-02"

type HabitEntry struct {
	ID        string    `db:"id" json:"id"`
	HabitID   string    `db:"habit_id" json:"-"`
	Date      time.Time `db:"date" json:"date"`
	Completed bool      `db:"completed" json:"completed"`
}

// Day truncates t to its calendar day at midnight UTC, the form entry dates are stored in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
