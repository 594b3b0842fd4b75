package handler

import (
	"log/slog"
	"net/http"

	"foldernotes/internal/domain/services"
	"foldernotes/internal/httputil"
)

// NoteHandler handles folder-scoped note HTTP requests
type NoteHandler struct {
	noteService services.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService services.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// noteRequest is the body of POST and PUT /notes.
// Presence matters: an absent field is not the same as "".
type noteRequest struct {
	Title   httputil.OptionalString `json:"title"`
	Content httputil.OptionalString `json:"content"`
}

// CreateNote creates a note in a folder
// POST /notes/{folderId}
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	createReq := &services.CreateNoteRequest{Content: req.Content.Ptr()}
	if title := req.Title.Ptr(); title != nil {
		createReq.Title = *title
	}

	note, err := h.noteService.CreateNote(r.Context(), r.PathValue("folderId"), createReq)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// ListNotes lists a folder's notes
// GET /notes/{folderId}
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context(), r.PathValue("folderId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// GetNote returns one note
// GET /notes/{folderId}/{noteId}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.GetNote(r.Context(), r.PathValue("folderId"), r.PathValue("noteId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// UpdateNote partially updates a note; omitted or null fields are kept
// PUT /notes/{folderId}/{noteId}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), r.PathValue("folderId"), r.PathValue("noteId"), &services.UpdateNoteRequest{
		Title:   req.Title.Ptr(),
		Content: req.Content.Ptr(),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote deletes one note
// DELETE /notes/{folderId}/{noteId}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.DeleteNote(r.Context(), r.PathValue("folderId"), r.PathValue("noteId")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondMessage(w, "Note deleted successfully")
}
