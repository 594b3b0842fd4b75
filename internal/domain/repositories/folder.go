package repositories

import (
	"context"

	"foldernotes/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder and fills in its gateway-assigned ID
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// List returns every folder sorted by name
	List(ctx context.Context) ([]models.Folder, error)

	// Update persists the folder's name and updated_at
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder. Callers remove its notes first.
	Delete(ctx context.Context, id string) error
}
