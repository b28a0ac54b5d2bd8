package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/model"
)

// ReminderJobRepository backs the durable reminder queue.
type ReminderJobRepository interface {
	Create(job *model.ReminderJob) error
	Due(now time.Time, limit int) ([]*model.ReminderJob, error)
	Claim(jobID string, now time.Time) (bool, error)
	Complete(jobID string) error
	Release(jobID string) error
	RequeueStale(cutoff time.Time) (int64, error)
}

type reminderJobRepository struct {
	db *sqlx.DB
}

func NewReminderJobRepository(db *sqlx.DB) ReminderJobRepository {
	return &reminderJobRepository{db: db}
}

func (r *reminderJobRepository) Create(job *model.ReminderJob) error {
	query := `INSERT INTO reminder_jobs (id, todo_id, run_at, status, attempts, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, job.ID, job.TodoID, job.RunAt.UTC(), job.Status, job.Attempts, job.CreatedAt.UTC())
	return err
}

// Due lists pending jobs whose run time has passed, oldest first.
func (r *reminderJobRepository) Due(now time.Time, limit int) ([]*model.ReminderJob, error) {
	var jobs []*model.ReminderJob
	query := `SELECT * FROM reminder_jobs
	          WHERE status = $1 AND run_at <= $2
	          ORDER BY run_at ASC
	          LIMIT $3`

	err := r.db.Select(&jobs, query, model.JobStatusPending, now.UTC(), limit)
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// Claim moves a job from pending to running. Only one worker can win a claim;
// the losers see false.
func (r *reminderJobRepository) Claim(jobID string, now time.Time) (bool, error) {
	query := `UPDATE reminder_jobs
	          SET status = $1, locked_at = $2, attempts = attempts + 1
	          WHERE id = $3 AND status = $4`

	result, err := r.db.Exec(query, model.JobStatusRunning, now.UTC(), jobID, model.JobStatusPending)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func (r *reminderJobRepository) Complete(jobID string) error {
	_, err := r.db.Exec(`UPDATE reminder_jobs SET status = $1 WHERE id = $2`, model.JobStatusDone, jobID)
	return err
}

func (r *reminderJobRepository) Release(jobID string) error {
	query := `UPDATE reminder_jobs SET status = $1, locked_at = NULL WHERE id = $2 AND status = $3`
	_, err := r.db.Exec(query, model.JobStatusPending, jobID, model.JobStatusRunning)
	return err
}

// RequeueStale returns jobs stuck in running since before cutoff to pending.
// A worker that died mid-dispatch leaves such rows behind.
func (r *reminderJobRepository) RequeueStale(cutoff time.Time) (int64, error) {
	query := `UPDATE reminder_jobs SET status = $1, locked_at = NULL
	          WHERE status = $2 AND locked_at < $3`

	result, err := r.db.Exec(query, model.JobStatusPending, model.JobStatusRunning, cutoff.UTC())
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
