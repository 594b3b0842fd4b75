package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foldernotes/internal/config"
	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
	"foldernotes/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateFolderName(req.Name); err != nil {
		return nil, domain.NewValidationError(err)
	}

	now := timestamp()
	folder := &models.Folder{
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// ListFolders returns all folders alphabetically
func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	folders, err := s.folderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// GetFolderWithNotes retrieves a folder and its notes
func (s *folderService) GetFolderWithNotes(ctx context.Context, folderID string) (*models.FolderWithNotes, error) {
	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []models.Note{}
	}

	return &models.FolderWithNotes{
		Folder: folder,
		Notes:  notes,
	}, nil
}

// UpdateFolder renames a folder. Validation runs before the existence check.
func (s *folderService) UpdateFolder(ctx context.Context, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateFolderName(req.Name); err != nil {
		return nil, domain.NewValidationError(err)
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	folder.Name = req.Name
	folder.UpdatedAt = timestamp()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and all of its notes.
// Notes go first so a failure part way never leaves orphans behind.
func (s *folderService) DeleteFolder(ctx context.Context, folderID string) error {
	var (
		folder  *models.Folder
		removed int64
	)

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}

		removed, err = s.noteRepo.DeleteByFolder(txCtx, folderID)
		if err != nil {
			return fmt.Errorf("failed to delete notes: %w", err)
		}

		return s.folderRepo.Delete(txCtx, folderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"notes_deleted", removed,
	)

	return nil
}

// validateFolderName expects an already trimmed name
func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required.Error("folder name is required"),
		validation.RuneLength(1, config.MaxFolderNameLength),
	)
}

// timestamp is the time stamped on created and updated rows.
// Microsecond precision matches what PostgreSQL stores.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
