package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
)

// SQLiteNoteRepository implements the NoteRepository interface
type SQLiteNoteRepository struct {
	db     *sql.DB
	tables *TableNames
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &SQLiteNoteRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

const noteColumns = "id, folder_id, title, content, created_at, updated_at"

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note             models.Note
		created, updated int64
	)
	if err := row.Scan(&note.ID, &note.FolderID, &note.Title, &note.Content, &created, &updated); err != nil {
		return nil, err
	}
	note.CreatedAt = fromNanos(created)
	note.UpdatedAt = fromNanos(updated)
	return &note, nil
}

// Create creates a new note
func (r *SQLiteNoteRepository) Create(ctx context.Context, note *models.Note) error {
	note.ID = uuid.NewString()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.tables.Notes)

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		note.ID,
		note.FolderID,
		note.Title,
		note.Content,
		note.CreatedAt.UnixNano(),
		note.UpdatedAt.UnixNano(),
	)
	if err != nil {
		note.ID = ""
		if isForeignKeyError(err) {
			return domain.NewNotFoundError("folder", note.FolderID)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note within its folder
func (r *SQLiteNoteRepository) GetByID(ctx context.Context, folderID, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = ? AND folder_id = ?
	`, noteColumns, r.tables.Notes)

	note, err := scanNote(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id, folderID))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFoundError("note", id)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// ListByFolder lists a folder's notes, most recently updated first
func (r *SQLiteNoteRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Note, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = ?
		ORDER BY updated_at DESC, created_at DESC
	`, noteColumns, r.tables.Notes)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
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
func (r *SQLiteNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND folder_id = ?
	`, r.tables.Notes)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		note.Title,
		note.Content,
		note.UpdatedAt.UnixNano(),
		note.ID,
		note.FolderID,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	return expectAffected(result, "note", note.ID)
}

// Delete deletes a note within its folder
func (r *SQLiteNoteRepository) Delete(ctx context.Context, folderID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND folder_id = ?`, r.tables.Notes)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id, folderID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	return expectAffected(result, "note", id)
}

// DeleteByFolder deletes every note in a folder
func (r *SQLiteNoteRepository) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = ?`, r.tables.Notes)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, folderID)
	if err != nil {
		return 0, fmt.Errorf("delete notes in folder: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
