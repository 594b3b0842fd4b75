package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin manages the schema and lifecycle of the PostgreSQL store
type Admin struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAdmin creates a schema admin for the configured tables
func NewAdmin(config *RepositoryConfig) *Admin {
	return &Admin{pool: config.Pool, tables: config.Tables}
}

// EnsureSchema creates tables and indexes if they don't exist.
// notes.folder_id references folders without ON DELETE CASCADE:
// the folder service removes notes itself, and the reference stops a
// folder row from disappearing while notes still point at it.
func (a *Admin) EnsureSchema(ctx context.Context) error {
	prefix := a.tables.Prefix

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + a.tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + a.tables.Notes + ` (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			folder_id UUID NOT NULL REFERENCES ` + a.tables.Folders + `(id),
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `folders_name ON ` + a.tables.Folders + `(name)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `notes_folder_updated ON ` + a.tables.Notes + `(folder_id, updated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := a.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables drops the notes and folders tables
func (a *Admin) DropTables(ctx context.Context) error {
	// notes first, it references folders
	for _, table := range []string{a.tables.Notes, a.tables.Folders} {
		if _, err := a.pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes every row while keeping the schema
func (a *Admin) ClearData(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, "TRUNCATE "+a.tables.Notes+", "+a.tables.Folders); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}

// Ping checks the database is reachable
func (a *Admin) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close releases the pool
func (a *Admin) Close(ctx context.Context) error {
	a.pool.Close()
	return nil
}
