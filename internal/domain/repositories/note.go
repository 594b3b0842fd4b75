package repositories

import (
	"context"

	"foldernotes/internal/domain/models"
)

// NoteRepository defines data access operations for notes.
// Every lookup by note ID is scoped to the owning folder.
type NoteRepository interface {
	// Create inserts a note and fills in its gateway-assigned ID
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note that lives in folderID
	GetByID(ctx context.Context, folderID, id string) (*models.Note, error)

	// ListByFolder returns a folder's notes, most recently updated first
	ListByFolder(ctx context.Context, folderID string) ([]models.Note, error)

	// Update persists title, content and updated_at
	Update(ctx context.Context, note *models.Note) error

	// Delete deletes a single note in folderID
	Delete(ctx context.Context, folderID, id string) error

	// DeleteByFolder deletes every note in folderID and returns how many went
	DeleteByFolder(ctx context.Context, folderID string) (int64, error)
}
