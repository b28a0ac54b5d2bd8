package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/repository"
)

type DBConfig struct {
	PollInterval time.Duration
	// VisibilityTimeout is how long a claimed job may stay running before
	// another worker may pick it up again.
	VisibilityTimeout time.Duration
	BatchSize         int
	// HandlerTimeout bounds one dispatch. It is kept below VisibilityTimeout
	// so a slow send finishes before the job can be requeued elsewhere.
	HandlerTimeout time.Duration
}

// DBQueue enqueues jobs into the reminder_jobs table.
type DBQueue struct {
	jobs repository.ReminderJobRepository
	now  func() time.Time
}

func NewDBQueue(jobs repository.ReminderJobRepository, now func() time.Time) *DBQueue {
	return &DBQueue{jobs: jobs, now: now}
}

func (q *DBQueue) Schedule(ctx context.Context, todoID string, delay time.Duration) error {
	now := q.now()
	job := &model.ReminderJob{
		ID:        uuid.New().String(),
		TodoID:    todoID,
		RunAt:     now.Add(max(delay, 0)),
		Status:    model.JobStatusPending,
		CreatedAt: now,
	}

	err := q.jobs.Create(job)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	slog.Debug("reminder enqueued", "job_id", job.ID, "todo_id", todoID, "run_at", job.RunAt)
	return nil
}

// Worker drains due jobs from the reminder_jobs table. Several workers may run
// against the same database; a job is handled by whichever claims it first.
type Worker struct {
	jobs    repository.ReminderJobRepository
	handler Handler
	cfg     DBConfig
	now     func() time.Time
}

func NewWorker(jobs repository.ReminderJobRepository, handler Handler, cfg DBConfig, now func() time.Time) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.VisibilityTimeout <= 0 {
		cfg.VisibilityTimeout = 5 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.HandlerTimeout <= 0 || cfg.HandlerTimeout > cfg.VisibilityTimeout/2 {
		cfg.HandlerTimeout = min(30*time.Second, cfg.VisibilityTimeout/2)
	}

	return &Worker{jobs: jobs, handler: handler, cfg: cfg, now: now}
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("reminder worker started", "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		_, err := w.Poll(ctx)
		if err != nil {
			slog.Error("reminder poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.Info("reminder worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll runs one pass: requeue stale jobs, then claim and handle a batch of
// due ones. It returns how many jobs this worker handled.
func (w *Worker) Poll(ctx context.Context) (int, error) {
	now := w.now()

	requeued, err := w.jobs.RequeueStale(now.Add(-w.cfg.VisibilityTimeout))
	if err != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", err)
	}
	if requeued > 0 {
		slog.Warn("requeued stale reminder jobs", "count", requeued)
	}

	due, err := w.jobs.Due(now, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list due jobs: %w", err)
	}

	handled := 0
	for _, job := range due {
		if ctx.Err() != nil {
			break
		}

		claimed, err := w.jobs.Claim(job.ID, w.now())
		if err != nil {
			slog.Error("failed to claim reminder job", "error", err, "job_id", job.ID)
			continue
		}
		if !claimed {
			continue
		}

		w.dispatch(ctx, job.TodoID)

		// Stopped mid-dispatch: the send may have been cut off, so hand the
		// job back for the next worker instead of marking it done.
		if ctx.Err() != nil {
			err = w.jobs.Release(job.ID)
			if err != nil {
				slog.Error("failed to release reminder job", "error", err, "job_id", job.ID)
			} else {
				slog.Info("reminder job released on shutdown", "job_id", job.ID)
			}
			break
		}
		handled++

		err = w.jobs.Complete(job.ID)
		if err != nil {
			// The job will be requeued after the visibility timeout and
			// dispatched again.
			slog.Error("failed to complete reminder job", "error", err, "job_id", job.ID)
		}
	}

	return handled, nil
}

func (w *Worker) dispatch(ctx context.Context, todoID string) {
	ctx, cancel := context.WithTimeout(ctx, w.cfg.HandlerTimeout)
	defer cancel()

	w.handler(ctx, todoID)
}
