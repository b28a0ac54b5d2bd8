package service

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/streakly/streakly/internal/markdown"
	"github.com/streakly/streakly/internal/model"
	"github.com/streakly/streakly/internal/repository"
	"github.com/streakly/streakly/internal/validation"
)

type NoteService struct {
	repo   repository.NoteRepository
	parser *markdown.Parser
	now    func() time.Time
}

func NewNoteService(repo repository.NoteRepository, parser *markdown.Parser, now func() time.Time) *NoteService {
	return &NoteService{
		repo:   repo,
		parser: parser,
		now:    now,
	}
}

func (s *NoteService) Create(userID, title, heading, content string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	heading = strings.TrimSpace(heading)
	content = strings.TrimSpace(content)

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", title, validation.MaxTitleLength},
		{"heading", heading, validation.MaxTitleLength},
		{"content", content, validation.MaxContentLength},
	}
	for _, f := range fields {
		err := validation.Required(f.name, f.value)
		if err == nil {
			err = validation.MaxLength(f.name, f.value, f.max)
		}
		if err != nil {
			return nil, invalid(f.name, err)
		}
	}

	note := &model.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Heading:   heading,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}

	err := s.repo.Create(note)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// Import creates a note from a markdown document. Frontmatter title and
// heading win; otherwise the file name and first heading are used.
func (s *NoteService) Import(userID, filename string, source []byte) (*model.Note, error) {
	doc, err := s.parser.ParseDocument(source)
	if err != nil {
		return nil, invalid("file", err)
	}

	title := doc.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}

	heading := doc.Heading
	if heading == "" {
		heading = title
	}

	return s.Create(userID, title, heading, doc.Body)
}

// Notes lists the user's notes newest first with rendered content.
func (s *NoteService) Notes(userID string) ([]*model.Note, error) {
	notes, err := s.repo.Notes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	for _, note := range notes {
		html, err := s.parser.Render(note.Content)
		if err != nil {
			slog.Warn("failed to render note", "error", err, "note_id", note.ID)
			continue
		}
		note.ContentHTML = html
	}

	return notes, nil
}

func (s *NoteService) Delete(userID, noteID string) error {
	return s.repo.Delete(userID, noteID)
}
