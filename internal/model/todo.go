package model

import (
	"time"
)

const (
	TodoStatusPending   = "pending"
	TodoStatusCompleted = "completed"
)

type Todo struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Task      string    `db:"task" json:"task"`
	Deadline  time.Time `db:"deadline" json:"deadline"`
	Reminder  time.Time `db:"reminder" json:"reminder"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (t *Todo) IsPending() bool {
	return t.Status == TodoStatusPending
}

// ToggledStatus returns the status a toggle moves the to-do to.
func (t *Todo) ToggledStatus() string {
	if t.Status == TodoStatusPending {
		return TodoStatusCompleted
	}
	return TodoStatusPending
}
