package services

import (
	"context"

	"foldernotes/internal/domain/models"
)

// NoteService handles note business logic.
// All note lookups are scoped to the owning folder.
type NoteService interface {
	CreateNote(ctx context.Context, folderID string, req *CreateNoteRequest) (*models.Note, error)
	ListNotes(ctx context.Context, folderID string) ([]models.Note, error)
	GetNote(ctx context.Context, folderID, noteID string) (*models.Note, error)

	// UpdateNote applies a partial update; nil fields keep their stored value
	UpdateNote(ctx context.Context, folderID, noteID string, req *UpdateNoteRequest) (*models.Note, error)

	DeleteNote(ctx context.Context, folderID, noteID string) error
}

// CreateNoteRequest represents a note creation request.
// Content is a pointer so an absent field can be told apart from "".
type CreateNoteRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

// UpdateNoteRequest represents a partial note update (nil = leave unchanged)
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
