package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/model"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(userID, habitID string) (*model.Habit, error)
	Habits(userID string, view model.HabitView) ([]*model.Habit, error)
	MarkCompleted(userID, habitID string) error
	MarkDeleted(userID, habitID string) error
	Delete(userID, habitID string) error
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (id, user_id, name, start_date, end_date, is_completed, is_deleted, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.StartDate,
		habit.EndDate,
		habit.IsCompleted,
		habit.IsDeleted,
		habit.CreatedAt,
	)

	return err
}

func (r *habitRepository) ByID(userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2`

	err := r.db.Get(habit, query, habitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, err
	}

	return habit, nil
}

// viewFilter maps each view to its WHERE fragment. Every view must be listed here.
var viewFilter = map[model.HabitView]string{
	model.HabitViewOngoing:   "AND is_deleted = FALSE AND is_completed = FALSE",
	model.HabitViewCompleted: "AND is_deleted = FALSE AND is_completed = TRUE",
	model.HabitViewDeleted:   "AND is_deleted = TRUE",
	model.HabitViewAll:       "",
}

func (r *habitRepository) Habits(userID string, view model.HabitView) ([]*model.Habit, error) {
	filter, ok := viewFilter[view]
	if !ok {
		return nil, fmt.Errorf("unknown habit view: %q", view)
	}

	var habits []*model.Habit
	query := `SELECT * FROM habits WHERE user_id = $1 ` + filter + ` ORDER BY created_at DESC`

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) MarkCompleted(userID, habitID string) error {
	query := `UPDATE habits SET is_completed = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return err
	}

	return expectOne(result, ErrHabitNotFound)
}

func (r *habitRepository) MarkDeleted(userID, habitID string) error {
	query := `UPDATE habits SET is_deleted = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, habitID, userID)
	if err != nil {
		return err
	}

	return expectOne(result, ErrHabitNotFound)
}

// Delete removes the habit and, explicitly, all of its entries in one transaction.
func (r *habitRepository) Delete(userID, habitID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owned int
	err = tx.Get(&owned, `SELECT COUNT(*) FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return err
	}
	if owned == 0 {
		return ErrHabitNotFound
	}

	_, err = tx.Exec(`DELETE FROM habit_entries WHERE habit_id = $1`, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete habit entries: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return err
	}
	err = expectOne(result, ErrHabitNotFound)
	if err != nil {
		return err
	}

	return tx.Commit()
}
