package services

import (
	"context"

	"foldernotes/internal/domain/models"
)

// FolderService handles folder business logic and owns the cascade rule
type FolderService interface {
	// CreateFolder creates a new, empty folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// ListFolders returns every folder sorted by name
	ListFolders(ctx context.Context) ([]models.Folder, error)

	// GetFolderWithNotes returns a folder and its notes, newest update first
	GetFolderWithNotes(ctx context.Context, folderID string) (*models.FolderWithNotes, error)

	// UpdateFolder renames a folder
	UpdateFolder(ctx context.Context, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder and every note in it
	DeleteFolder(ctx context.Context, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// UpdateFolderRequest represents a folder rename request
type UpdateFolderRequest struct {
	Name string `json:"name"`
}
