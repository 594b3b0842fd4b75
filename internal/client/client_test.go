package client_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldernotes/internal/client"
	"foldernotes/internal/config"
	"foldernotes/internal/domain"
	"foldernotes/internal/repository"
	"foldernotes/internal/repository/sqlite"
	"foldernotes/internal/server"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := repository.OpenWithSchema(ctx, &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  sqlite.MemoryPath,
		TablePrefix: "test_",
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Admin.Close(ctx) })

	srv := httptest.NewServer(server.NewHandler(store, server.Options{}, logger))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL+"/", client.WithTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := client.New("  ")
	assert.Error(t, err)

	_, err = client.New("http://localhost:8080", client.WithTimeout(0))
	assert.Error(t, err)
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)

	folders, err := c.ListFolders(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders)

	folder, err := c.CreateFolder(ctx, "Work")
	require.NoError(t, err)
	assert.Equal(t, "Work", folder.Name)

	note, err := c.CreateNote(ctx, folder.ID, "T", "")
	require.NoError(t, err)
	assert.Equal(t, folder.ID, note.FolderID)
	assert.Equal(t, "", note.Content)

	title := "New"
	updated, err := c.UpdateNote(ctx, folder.ID, note.ID, &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "", updated.Content)

	content := "body"
	updated, err = c.UpdateNote(ctx, folder.ID, note.ID, nil, &content)
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "body", updated.Content)

	got, err := c.GetNote(ctx, folder.ID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)

	notes, err := c.ListNotes(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	withNotes, err := c.GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", withNotes.Folder.Name)
	require.Len(t, withNotes.Notes, 1)

	renamed, err := c.UpdateFolder(ctx, folder.ID, "Home")
	require.NoError(t, err)
	assert.Equal(t, "Home", renamed.Name)

	msg, err := c.DeleteNote(ctx, folder.ID, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Note deleted successfully", msg)

	msg, err = c.DeleteFolder(ctx, folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Folder and its notes deleted successfully", msg)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.CreateFolder(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
	assert.Equal(t, apiErr.Message, client.Message(err))

	_, err = c.GetFolder(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = c.GetNote(ctx, "missing", "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.ListFolders(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.New(url, client.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListFolders(context.Background())
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
