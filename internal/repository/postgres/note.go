package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const noteColumns = "id, folder_id, title, content, created_at, updated_at"

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.FolderID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Create creates a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if !validID(note.FolderID) {
		return domain.NewNotFoundError("folder", note.FolderID)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		note.FolderID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return domain.NewNotFoundError("folder", note.FolderID)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note within its folder
func (r *PostgresNoteRepository) GetByID(ctx context.Context, folderID, id string) (*models.Note, error) {
	if !validID(folderID) || !validID(id) {
		return nil, domain.NewNotFoundError("note", id)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND folder_id = $2
	`, noteColumns, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	note, err := scanNote(executor.QueryRow(ctx, query, id, folderID))
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, domain.NewNotFoundError("note", id)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// ListByFolder lists a folder's notes, most recently updated first
func (r *PostgresNoteRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Note, error) {
	notes := []models.Note{}
	if !validID(folderID) {
		return notes, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1
		ORDER BY updated_at DESC, created_at DESC
	`, noteColumns, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}

	return notes, nil
}

// Update updates a note's title and content
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	if !validID(note.FolderID) || !validID(note.ID) {
		return domain.NewNotFoundError("note", note.ID)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4 AND folder_id = $5
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
		note.FolderID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("note", note.ID)
	}

	return nil
}

// Delete deletes a note within its folder
func (r *PostgresNoteRepository) Delete(ctx context.Context, folderID, id string) error {
	if !validID(folderID) || !validID(id) {
		return domain.NewNotFoundError("note", id)
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND folder_id = $2
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, folderID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("note", id)
	}

	return nil
}

// DeleteByFolder deletes every note in a folder
func (r *PostgresNoteRepository) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	if !validID(folderID) {
		return 0, nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE folder_id = $1
	`, r.tables.Notes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, folderID)
	if err != nil {
		return 0, fmt.Errorf("delete notes in folder: %w", err)
	}

	return result.RowsAffected(), nil
}
