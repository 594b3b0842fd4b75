package service

import (
	"context"
	"fmt"

	"foldernotes/internal/domain/repositories"
)

// ResourceValidator checks that parent resources exist
// before allowing operations on child resources
type ResourceValidator struct {
	folderRepo repositories.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo repositories.FolderRepository) *ResourceValidator {
	return &ResourceValidator{
		folderRepo: folderRepo,
	}
}

// ValidateFolder ensures a folder exists.
// Returns an error wrapping domain.ErrNotFound if it doesn't.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, folderID string) error {
	if _, err := v.folderRepo.GetByID(ctx, folderID); err != nil {
		return fmt.Errorf("invalid folder: %w", err)
	}
	return nil
}
