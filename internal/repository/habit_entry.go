package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/model"
)

var (
	ErrHabitEntryNotFound = errors.New("habit entry not found")
)

type HabitEntryRepository interface {
	CreateRange(habitID string, start, end time.Time) error
	Entries(habitID string) ([]*model.HabitEntry, error)
	Entry(habitID string, date time.Time) (*model.HabitEntry, error)
	Toggle(habitID string, date time.Time) (*model.HabitEntry, error)
	Counts(habitID string) (completed, total int, err error)
}

type habitEntryRepository struct {
	db *sqlx.DB
}

func NewHabitEntryRepository(db *sqlx.DB) HabitEntryRepository {
	return &habitEntryRepository{db: db}
}

// insertEntry is a get-or-create: a concurrent insert for the same
// (habit, date) collapses into the existing row instead of failing.
const insertEntry = `INSERT INTO habit_entries (id, habit_id, date, completed)
	VALUES ($1, $2, $3, FALSE)
	ON CONFLICT (habit_id, date) DO NOTHING`

// CreateRange creates one uncompleted entry per day in [start, end].
func (r *habitEntryRepository) CreateRange(habitID string, start, end time.Time) error {
	start, end = model.Day(start), model.Day(end)
	if end.Before(start) {
		return fmt.Errorf("invalid entry range: %s after %s", start.Format(model.DateLayout), end.Format(model.DateLayout))
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		_, err := tx.Exec(insertEntry, uuid.New().String(), habitID, day)
		if err != nil {
			return fmt.Errorf("failed to create entry %s: %w", day.Format(model.DateLayout), err)
		}
	}

	return tx.Commit()
}

func (r *habitEntryRepository) Entries(habitID string) ([]*model.HabitEntry, error) {
	var entries []*model.HabitEntry
	query := `SELECT * FROM habit_entries WHERE habit_id = $1 ORDER BY date ASC`

	err := r.db.Select(&entries, query, habitID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *habitEntryRepository) Entry(habitID string, date time.Time) (*model.HabitEntry, error) {
	entry := &model.HabitEntry{}
	query := `SELECT * FROM habit_entries WHERE habit_id = $1 AND date = $2`

	err := r.db.Get(entry, query, habitID, model.Day(date))
	if err == sql.ErrNoRows {
		return nil, ErrHabitEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Toggle flips the entry for (habit, date), creating it first if missing.
// Both statements are single-row atomic writes, so concurrent toggles of the
// same day never produce a second row.
func (r *habitEntryRepository) Toggle(habitID string, date time.Time) (*model.HabitEntry, error) {
	date = model.Day(date)

	_, err := r.db.Exec(insertEntry, uuid.New().String(), habitID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure entry: %w", err)
	}

	query := `UPDATE habit_entries SET completed = NOT completed WHERE habit_id = $1 AND date = $2`
	result, err := r.db.Exec(query, habitID, date)
	if err != nil {
		return nil, err
	}

	err = expectOne(result, ErrHabitEntryNotFound)
	if err != nil {
		return nil, err
	}

	return r.Entry(habitID, date)
}

func (r *habitEntryRepository) Counts(habitID string) (int, int, error) {
	var row struct {
		Completed int `db:"completed"`
		Total     int `db:"total"`
	}
	query := `SELECT
	              COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed,
	              COUNT(*) AS total
	          FROM habit_entries WHERE habit_id = $1`

	err := r.db.Get(&row, query, habitID)
	if err != nil {
		return 0, 0, err
	}

	return row.Completed, row.Total, nil
}
