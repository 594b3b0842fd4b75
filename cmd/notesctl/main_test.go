package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldernotes/internal/config"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/repository"
	"foldernotes/internal/repository/sqlite"
	"foldernotes/internal/server"
)

func startServer(t *testing.T) string {
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
	return srv.URL
}

func run(t *testing.T, apiURL, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--api", apiURL}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestOneShotCommands(t *testing.T) {
	api := startServer(t)

	out, err := run(t, api, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)

	out, err = run(t, api, "", "folders", "create", "Work")
	require.NoError(t, err)
	var folder models.Folder
	require.NoError(t, json.Unmarshal([]byte(out), &folder))
	assert.Equal(t, "Work", folder.Name)

	out, err = run(t, api, "", "notes", "create", folder.ID, "--title", "T", "--content", "C")
	require.NoError(t, err)
	var note models.Note
	require.NoError(t, json.Unmarshal([]byte(out), &note))

	out, err = run(t, api, "", "notes", "update", folder.ID, note.ID, "--title", "New")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &note))
	assert.Equal(t, "New", note.Title)
	assert.Equal(t, "C", note.Content)

	out, err = run(t, api, "", "folders", "get", folder.ID)
	require.NoError(t, err)
	var withNotes models.FolderWithNotes
	require.NoError(t, json.Unmarshal([]byte(out), &withNotes))
	require.Len(t, withNotes.Notes, 1)

	out, err = run(t, api, "", "folders", "delete", folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "Folder and its notes deleted successfully\n", out)

	_, err = run(t, api, "", "notes", "get", folder.ID, note.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCommandErrors(t *testing.T) {
	api := startServer(t)

	_, err := run(t, api, "", "notes", "create", "missing", "--title", "T")
	assert.Error(t, err)

	_, err = run(t, api, "", "folders", "create")
	assert.Error(t, err, "missing argument")

	_, err = run(t, api, "", "folders", "list", "--timeout", "0s")
	assert.Error(t, err, "zero timeout rejected")
}

func TestBrowse(t *testing.T) {
	api := startServer(t)

	_, err := run(t, api, "", "folders", "create", "Work")
	require.NoError(t, err)

	out, err := run(t, api, "open 1\nnew-note 1\nIdea\nbody\nquit\n", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "Type help for commands.")
	assert.Contains(t, out, "[1] Work")
	assert.Contains(t, out, "* 1.1 Idea")
	assert.Contains(t, out, "body")
}
