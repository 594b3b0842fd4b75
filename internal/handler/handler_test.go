package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldernotes/internal/config"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/domain/repositories"
	"foldernotes/internal/handler"
	"foldernotes/internal/repository"
	"foldernotes/internal/repository/sqlite"
	"foldernotes/internal/server"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	ctx := context.Background()

	store, err := repository.OpenWithSchema(ctx, &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  sqlite.MemoryPath,
		TablePrefix: "test_",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Admin.Close(ctx) })
	return store
}

func newStoreHandler(store *repository.Store) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return server.NewHandler(store, server.Options{CORSOrigins: "http://localhost:3000"}, logger)
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return newStoreHandler(newTestStore(t))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[map[string]string](t, rec)
	msg, ok := body["error"]
	require.True(t, ok, "error payload has an error field: %s", rec.Body.String())
	return msg
}

func TestFolderNoteLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/folders", `{"name":"Work"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	folder := decode[models.Folder](t, rec)
	require.NotEmpty(t, folder.ID)

	rec = do(t, h, http.MethodPost, "/notes/"+folder.ID, `{"title":"T","content":"C"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	note := decode[models.Note](t, rec)
	require.NotEmpty(t, note.ID)
	assert.Equal(t, folder.ID, note.FolderID)

	rec = do(t, h, http.MethodDelete, "/folders/"+folder.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Folder and its notes deleted successfully"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/notes/"+folder.ID+"/"+note.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorMessage(t, rec))
}

func TestPartialNoteUpdateKeepsContent(t *testing.T) {
	h := newTestHandler(t)

	folder := decode[models.Folder](t, do(t, h, http.MethodPost, "/folders", `{"name":"Work"}`))
	note := decode[models.Note](t, do(t, h, http.MethodPost, "/notes/"+folder.ID, `{"title":"T","content":"C"}`))

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantTitle   string
		wantContent string
	}{
		{name: "title only", body: `{"title":"New"}`, wantStatus: http.StatusOK, wantTitle: "New", wantContent: "C"},
		{name: "null content ignored", body: `{"content":null}`, wantStatus: http.StatusOK, wantTitle: "New", wantContent: "C"},
		{name: "empty content stored", body: `{"content":""}`, wantStatus: http.StatusOK, wantTitle: "New", wantContent: ""},
		{name: "empty body object", body: `{}`, wantStatus: http.StatusOK, wantTitle: "New", wantContent: ""},
		{name: "blank title", body: `{"title":""}`, wantStatus: http.StatusBadRequest},
		{name: "wrong type", body: `{"title":5}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPut, "/notes/"+folder.ID+"/"+note.ID, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, errorMessage(t, rec))
				return
			}

			stored := decode[models.Note](t, do(t, h, http.MethodGet, "/notes/"+folder.ID+"/"+note.ID, ""))
			assert.Equal(t, tt.wantTitle, stored.Title)
			assert.Equal(t, tt.wantContent, stored.Content)
		})
	}
}

func TestFolderRoutes(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/folders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	for _, body := range []string{`{"name":"Zebra"}`, `{"name":"Alpha"}`} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/folders", body).Code)
	}

	folders := decode[[]models.Folder](t, do(t, h, http.MethodGet, "/folders", ""))
	require.Len(t, folders, 2)
	assert.Equal(t, "Alpha", folders[0].Name)
	assert.Equal(t, "Zebra", folders[1].Name)

	rec = do(t, h, http.MethodPut, "/folders/"+folders[0].ID, `{"name":"Aardvark"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Aardvark", decode[models.Folder](t, rec).Name)

	rec = do(t, h, http.MethodGet, "/folders/"+folders[0].ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	withNotes := decode[models.FolderWithNotes](t, rec)
	assert.Equal(t, "Aardvark", withNotes.Folder.Name)
	assert.NotNil(t, withNotes.Notes)
	assert.Contains(t, rec.Body.String(), `"notes":[]`)
}

func TestFolderErrors(t *testing.T) {
	h := newTestHandler(t)
	folder := decode[models.Folder](t, do(t, h, http.MethodPost, "/folders", `{"name":"Work"}`))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "create without name", method: http.MethodPost, path: "/folders", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "create empty name", method: http.MethodPost, path: "/folders", body: `{"name":""}`, wantStatus: http.StatusBadRequest},
		{name: "create malformed body", method: http.MethodPost, path: "/folders", body: `{"name":`, wantStatus: http.StatusBadRequest},
		{name: "create without body", method: http.MethodPost, path: "/folders", wantStatus: http.StatusBadRequest},
		{name: "get missing", method: http.MethodGet, path: "/folders/nope", wantStatus: http.StatusNotFound},
		{name: "update empty name", method: http.MethodPut, path: "/folders/" + folder.ID, body: `{"name":""}`, wantStatus: http.StatusBadRequest},
		{name: "update missing", method: http.MethodPut, path: "/folders/nope", body: `{"name":"x"}`, wantStatus: http.StatusNotFound},
		{name: "delete missing", method: http.MethodDelete, path: "/folders/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, errorMessage(t, rec))
		})
	}

	// Validation failures persist nothing
	folders := decode[[]models.Folder](t, do(t, h, http.MethodGet, "/folders", ""))
	assert.Len(t, folders, 1)
}

func TestNoteRoutes(t *testing.T) {
	h := newTestHandler(t)
	a := decode[models.Folder](t, do(t, h, http.MethodPost, "/folders", `{"name":"A"}`))
	b := decode[models.Folder](t, do(t, h, http.MethodPost, "/folders", `{"name":"B"}`))

	first := decode[models.Note](t, do(t, h, http.MethodPost, "/notes/"+a.ID, `{"title":"first","content":""}`))
	time.Sleep(5 * time.Millisecond)
	second := decode[models.Note](t, do(t, h, http.MethodPost, "/notes/"+a.ID, `{"title":"second","content":"x"}`))

	notes := decode[[]models.Note](t, do(t, h, http.MethodGet, "/notes/"+a.ID, ""))
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	withNotes := decode[models.FolderWithNotes](t, do(t, h, http.MethodGet, "/folders/"+a.ID, ""))
	require.Len(t, withNotes.Notes, 2)
	assert.Equal(t, second.ID, withNotes.Notes[0].ID)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "create missing title", method: http.MethodPost, path: "/notes/" + a.ID, body: `{"content":"C"}`, wantStatus: http.StatusBadRequest},
		{name: "create missing content", method: http.MethodPost, path: "/notes/" + a.ID, body: `{"title":"T"}`, wantStatus: http.StatusBadRequest},
		{name: "create null content", method: http.MethodPost, path: "/notes/" + a.ID, body: `{"title":"T","content":null}`, wantStatus: http.StatusBadRequest},
		{name: "create in missing folder", method: http.MethodPost, path: "/notes/nope", body: `{"title":"T","content":"C"}`, wantStatus: http.StatusNotFound},
		{name: "list missing folder", method: http.MethodGet, path: "/notes/nope", wantStatus: http.StatusNotFound},
		{name: "get from other folder", method: http.MethodGet, path: "/notes/" + b.ID + "/" + first.ID, wantStatus: http.StatusNotFound},
		{name: "update in other folder", method: http.MethodPut, path: "/notes/" + b.ID + "/" + first.ID, body: `{"title":"x"}`, wantStatus: http.StatusNotFound},
		{name: "delete from other folder", method: http.MethodDelete, path: "/notes/" + b.ID + "/" + first.ID, wantStatus: http.StatusNotFound},
		{name: "get unknown note", method: http.MethodGet, path: "/notes/" + a.ID + "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, errorMessage(t, rec))
		})
	}

	rec := do(t, h, http.MethodDelete, "/notes/"+a.ID+"/"+first.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Note deleted successfully"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/notes/"+a.ID+"/"+first.ID, "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/notes/"+a.ID+"/"+second.ID, "").Code)
}

// brokenFolders fails every read with a driver-level error
type brokenFolders struct {
	repositories.FolderRepository
}

const driverFailure = `pq: relation "test_folders" does not exist`

func (brokenFolders) List(ctx context.Context) ([]models.Folder, error) {
	return nil, fmt.Errorf("list folders: %w", errors.New(driverFailure))
}

func (brokenFolders) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	return nil, fmt.Errorf("get folder: %w", errors.New(driverFailure))
}

func TestUnexpectedStoreFailure(t *testing.T) {
	t.Run("failing repository", func(t *testing.T) {
		store := *newTestStore(t)
		store.Folders = brokenFolders{FolderRepository: store.Folders}
		h := newStoreHandler(&store)

		tests := []struct {
			method, path, body string
		}{
			{http.MethodGet, "/folders", ""},
			{http.MethodGet, "/folders/any", ""},
			{http.MethodPut, "/folders/any", `{"name":"Renamed"}`},
			{http.MethodPost, "/notes/any", `{"title":"T","content":"C"}`},
		}
		for _, tt := range tests {
			t.Run(tt.method+" "+tt.path, func(t *testing.T) {
				rec := do(t, h, tt.method, tt.path, tt.body)
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
				assert.NotContains(t, rec.Body.String(), "relation")
			})
		}
	})

	t.Run("closed store", func(t *testing.T) {
		store := newTestStore(t)
		h := newStoreHandler(store)
		require.NoError(t, store.Admin.Close(context.Background()))

		rec := do(t, h, http.MethodGet, "/folders", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "closed")
	})

	t.Run("validation still wins", func(t *testing.T) {
		store := *newTestStore(t)
		store.Folders = brokenFolders{FolderRepository: store.Folders}
		rec := do(t, newStoreHandler(&store), http.MethodPost, "/folders", `{"name":""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}

type downStore struct{}

func (downStore) Ping(ctx context.Context) error { return errors.New("connection refused") }

func TestHealthCheckStoreDown(t *testing.T) {
	h := handler.NewHealthHandler(downStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	h.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"store unavailable"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/folders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
