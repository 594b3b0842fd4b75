package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Admin manages the schema and lifecycle of the SQLite store
type Admin struct {
	db     *sql.DB
	tables *TableNames
}

// NewAdmin creates a schema admin for the configured tables
func NewAdmin(config *RepositoryConfig) *Admin {
	return &Admin{db: config.DB, tables: config.Tables}
}

// EnsureSchema creates tables and indexes if they don't exist
func (a *Admin) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + a.tables.Folders + ` (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + a.tables.Notes + ` (
			id TEXT PRIMARY KEY,
			folder_id TEXT NOT NULL REFERENCES ` + a.tables.Folders + `(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + a.tables.Folders + `_name ON ` + a.tables.Folders + `(name)`,
		`CREATE INDEX IF NOT EXISTS idx_` + a.tables.Notes + `_folder_updated ON ` + a.tables.Notes + `(folder_id, updated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropTables drops the notes and folders tables
func (a *Admin) DropTables(ctx context.Context) error {
	for _, table := range []string{a.tables.Notes, a.tables.Folders} {
		if _, err := a.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes every row while keeping the schema
func (a *Admin) ClearData(ctx context.Context) error {
	for _, table := range []string{a.tables.Notes, a.tables.Folders} {
		if _, err := a.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Ping checks the database is reachable
func (a *Admin) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the database
func (a *Admin) Close(ctx context.Context) error {
	return a.db.Close()
}
