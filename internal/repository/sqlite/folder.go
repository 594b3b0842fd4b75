package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
)

// SQLiteFolderRepository implements the FolderRepository interface.
// Timestamps are stored as unix nanoseconds.
type SQLiteFolderRepository struct {
	db     *sql.DB
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &SQLiteFolderRepository{
		db:     config.DB,
		tables: config.Tables,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var (
		folder           models.Folder
		created, updated int64
	)
	if err := row.Scan(&folder.ID, &folder.Name, &created, &updated); err != nil {
		return nil, err
	}
	folder.CreatedAt = fromNanos(created)
	folder.UpdatedAt = fromNanos(updated)
	return &folder, nil
}

// Create creates a new folder
func (r *SQLiteFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = uuid.NewString()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, r.tables.Folders)

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		folder.ID,
		folder.Name,
		folder.CreatedAt.UnixNano(),
		folder.UpdatedAt.UnixNano(),
	)
	if err != nil {
		folder.ID = ""
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *SQLiteFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, r.tables.Folders)

	folder, err := scanFolder(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFoundError("folder", id)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// List returns all folders sorted by name
func (r *SQLiteFolderRepository) List(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, created_at, updated_at
		FROM %s
		ORDER BY name ASC, created_at ASC
	`, r.tables.Folders)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Update updates a folder's name
func (r *SQLiteFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = ?, updated_at = ?
		WHERE id = ?
	`, r.tables.Folders)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		folder.Name,
		folder.UpdatedAt.UnixNano(),
		folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	return expectAffected(result, "folder", folder.ID)
}

// Delete deletes a folder. Fails while notes still reference it.
func (r *SQLiteFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.tables.Folders)

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("delete folder %s: notes still reference it: %w", id, err)
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	return expectAffected(result, "folder", id)
}

// expectAffected maps a zero-row write to ErrNotFound
func expectAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError(kind, id)
	}
	return nil
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
