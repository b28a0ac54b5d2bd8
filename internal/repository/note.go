package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/model"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

type NoteRepository interface {
	Create(note *model.Note) error
	Notes(userID string) ([]*model.Note, error)
	Delete(userID, noteID string) error
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *model.Note) error {
	query := `INSERT INTO notes (id, user_id, title, heading, content, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, note.ID, note.UserID, note.Title, note.Heading, note.Content, note.CreatedAt)
	return err
}

// Notes lists a user's notes, newest first.
func (r *noteRepository) Notes(userID string) ([]*model.Note, error) {
	var notes []*model.Note
	query := `SELECT * FROM notes WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Delete(userID, noteID string) error {
	result, err := r.db.Exec(`DELETE FROM notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return err
	}

	return expectOne(result, ErrNoteNotFound)
}
