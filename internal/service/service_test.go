package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"foldernotes/internal/config"
	"foldernotes/internal/domain/services"
	"foldernotes/internal/repository"
	"foldernotes/internal/repository/sqlite"
)

type testEnv struct {
	store   *repository.Store
	folders services.FolderService
	notes   services.NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slogDiscard()

	store, err := repository.OpenWithSchema(ctx, &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  sqlite.MemoryPath,
		TablePrefix: "test_",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Admin.Close(ctx) })

	return newEnvFromStore(store, logger)
}

func newEnvFromStore(store *repository.Store, logger *slog.Logger) *testEnv {
	validator := NewResourceValidator(store.Folders)
	return &testEnv{
		store:   store,
		folders: NewFolderService(store.Folders, store.Notes, store.TxManager, logger),
		notes:   NewNoteService(store.Notes, store.TxManager, validator, logger),
	}
}

func strPtr(s string) *string { return &s }

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
