// Package queue defers reminder dispatch until a to-do's reminder time.
//
// Two backends share the Queue interface. The db backend persists jobs in
// reminder_jobs and is drained by a polling Worker, possibly in another
// process. The memory backend keeps one timer per job and loses pending jobs
// on restart; it is meant for development and tests.
package queue

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("queue closed")

// Queue schedules a reminder for a to-do after delay. Jobs carry only the
// to-do id; everything else is re-read when the job fires.
type Queue interface {
	Schedule(ctx context.Context, todoID string, delay time.Duration) error
}

// Handler runs a fired job. It owns its own error reporting: a job is never
// retried once its handler has returned.
type Handler func(ctx context.Context, todoID string)
