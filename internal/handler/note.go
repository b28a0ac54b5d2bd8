package handler

import (
	"io"
	"net/http"

	"github.com/streakly/streakly/internal/ctxkeys"
	"github.com/streakly/streakly/internal/service"
	"github.com/streakly/streakly/internal/validation"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	notes, err := h.noteService.Notes(user.ID)
	if err != nil {
		writeError(w, r, err, "load notes")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	_, err := h.noteService.Create(user.ID, r.FormValue("title"), r.FormValue("heading"), r.FormValue("content"))
	if err != nil {
		writeError(w, r, err, "create note")
		return
	}

	http.Redirect(w, r, "/app/notes", http.StatusSeeOther)
}

// Import creates a note from an uploaded markdown file (form field "file").
func (h *NoteHandler) Import(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, validation.MarkdownUpload.MaxSize+(64<<10))

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, &service.ValidationError{Field: "file", Message: "a markdown file is required"}, "import note")
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateUpload(header, validation.MarkdownUpload)
	if err != nil {
		writeError(w, r, &service.ValidationError{Field: "file", Message: err.Error()}, "import note")
		return
	}

	source, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, err, "import note")
		return
	}

	_, err = h.noteService.Import(user.ID, header.Filename, source)
	if err != nil {
		writeError(w, r, err, "import note")
		return
	}

	http.Redirect(w, r, "/app/notes", http.StatusSeeOther)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.noteService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "delete note")
		return
	}

	http.Redirect(w, r, "/app/notes", http.StatusSeeOther)
}
