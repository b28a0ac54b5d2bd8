package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/model"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
)

type TodoRepository interface {
	Create(todo *model.Todo) error
	ByID(userID, todoID string) (*model.Todo, error)
	// Get loads a to-do without an owner check. Only the reminder
	// dispatcher uses it; it runs outside any user request.
	Get(todoID string) (*model.Todo, error)
	Todos(userID string) ([]*model.Todo, error)
	ToggleStatus(userID, todoID string) (string, error)
	Delete(userID, todoID string) error
}

type todoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(todo *model.Todo) error {
	query := `INSERT INTO todos (id, user_id, task, deadline, reminder, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		todo.ID,
		todo.UserID,
		todo.Task,
		todo.Deadline,
		todo.Reminder,
		todo.Status,
		todo.CreatedAt,
	)

	return err
}

func (r *todoRepository) ByID(userID, todoID string) (*model.Todo, error) {
	todo := &model.Todo{}
	query := `SELECT * FROM todos WHERE id = $1 AND user_id = $2`

	err := r.db.Get(todo, query, todoID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (r *todoRepository) Get(todoID string) (*model.Todo, error) {
	todo := &model.Todo{}

	err := r.db.Get(todo, `SELECT * FROM todos WHERE id = $1`, todoID)
	if err == sql.ErrNoRows {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// Todos lists a user's to-dos by deadline, soonest first.
func (r *todoRepository) Todos(userID string) ([]*model.Todo, error) {
	var todos []*model.Todo
	query := `SELECT * FROM todos WHERE user_id = $1 ORDER BY deadline ASC`

	err := r.db.Select(&todos, query, userID)
	if err != nil {
		return nil, err
	}

	return todos, nil
}

// ToggleStatus flips pending <-> completed in a single statement and returns the new status.
func (r *todoRepository) ToggleStatus(userID, todoID string) (string, error) {
	query := `UPDATE todos
	          SET status = CASE WHEN status = $1 THEN $2 ELSE $1 END
	          WHERE id = $3 AND user_id = $4
	          RETURNING status`

	var status string
	err := r.db.Get(&status, query, model.TodoStatusPending, model.TodoStatusCompleted, todoID, userID)
	if err == sql.ErrNoRows {
		return "", ErrTodoNotFound
	}
	if err != nil {
		return "", err
	}

	return status, nil
}

func (r *todoRepository) Delete(userID, todoID string) error {
	result, err := r.db.Exec(`DELETE FROM todos WHERE id = $1 AND user_id = $2`, todoID, userID)
	if err != nil {
		return err
	}

	return expectOne(result, ErrTodoNotFound)
}
