package model

import (
	"time"
)

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
)

type ReminderJob struct {
	ID        string     `db:"id"`
	TodoID    string     `db:"todo_id"`
	RunAt     time.Time  `db:"run_at"`
	Status    string     `db:"status"`
	Attempts  int        `db:"attempts"`
	LockedAt  *time.Time `db:"locked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
