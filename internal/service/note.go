package service

import (
	"context"
	"log/slog"
	"strings"

	"foldernotes/internal/config"
	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
	"foldernotes/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type noteService struct {
	noteRepo  repositories.NoteRepository
	txManager repositories.TransactionManager
	validator *ResourceValidator
	logger    *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	validator *ResourceValidator,
	logger *slog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		txManager: txManager,
		validator: validator,
		logger:    logger,
	}
}

// CreateNote creates a note inside an existing folder
func (s *noteService) CreateNote(ctx context.Context, folderID string, req *services.CreateNoteRequest) (*models.Note, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, domain.NewValidationError(err)
	}

	now := timestamp()
	note := &models.Note{
		FolderID:  folderID,
		Title:     req.Title,
		Content:   *req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The folder check and the insert share a transaction so a concurrent
	// folder delete cannot slip in between them
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.validator.ValidateFolder(txCtx, folderID); err != nil {
			return err
		}
		return s.noteRepo.Create(txCtx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"folder_id", folderID,
		"title", note.Title,
	)

	return note, nil
}

// ListNotes lists a folder's notes, most recently updated first
func (s *noteService) ListNotes(ctx context.Context, folderID string) ([]models.Note, error) {
	if err := s.validator.ValidateFolder(ctx, folderID); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNote retrieves a note by ID within its folder
func (s *noteService) GetNote(ctx context.Context, folderID, noteID string) (*models.Note, error) {
	if err := s.validator.ValidateFolder(ctx, folderID); err != nil {
		return nil, err
	}
	return s.noteRepo.GetByID(ctx, folderID, noteID)
}

// UpdateNote applies a partial update to a note
func (s *noteService) UpdateNote(ctx context.Context, folderID, noteID string, req *services.UpdateNoteRequest) (*models.Note, error) {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		req.Title = &title
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, domain.NewValidationError(err)
	}

	if err := s.validator.ValidateFolder(ctx, folderID); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.GetByID(ctx, folderID, noteID)
	if err != nil {
		return nil, err
	}

	// Nothing to change
	if req.Title == nil && req.Content == nil {
		return note, nil
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	note.UpdatedAt = timestamp()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note updated",
		"id", note.ID,
		"folder_id", folderID,
		"title_changed", req.Title != nil,
		"content_changed", req.Content != nil,
	)

	return note, nil
}

// DeleteNote deletes a single note within its folder
func (s *noteService) DeleteNote(ctx context.Context, folderID, noteID string) error {
	if err := s.validator.ValidateFolder(ctx, folderID); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, folderID, noteID); err != nil {
		return err
	}

	s.logger.Info("note deleted",
		"id", noteID,
		"folder_id", folderID,
	)

	return nil
}

// validateCreateRequest validates a note creation request
func (s *noteService) validateCreateRequest(req *services.CreateNoteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, config.MaxNoteTitleLength),
		),
		validation.Field(&req.Content,
			validation.NotNil.Error("content is required"),
		),
	)
}

// validateUpdateRequest validates the fields that are present
func (s *noteService) validateUpdateRequest(req *services.UpdateNoteRequest) error {
	if req.Title == nil {
		return nil
	}
	return validation.Validate(*req.Title,
		validation.Required.Error("title cannot be empty"),
		validation.RuneLength(1, config.MaxNoteTitleLength),
	)
}
