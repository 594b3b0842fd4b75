// Package storetest holds a compliance suite every store backend must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foldernotes/internal/config"
	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
	"foldernotes/internal/repository"
)

// Run exercises the repository contract against a backend.
// makeStore must return a clean, isolated store with its schema in place.
func Run(t *testing.T, makeStore func(t *testing.T) *repository.Store) {
	t.Helper()

	t.Run("FolderCRUD", func(t *testing.T) { testFolderCRUD(t, makeStore(t)) })
	t.Run("FolderOrdering", func(t *testing.T) { testFolderOrdering(t, makeStore(t)) })
	t.Run("NoteScoping", func(t *testing.T) { testNoteScoping(t, makeStore(t)) })
	t.Run("NoteOrdering", func(t *testing.T) { testNoteOrdering(t, makeStore(t)) })
	t.Run("DeleteByFolder", func(t *testing.T) { testDeleteByFolder(t, makeStore(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testTransactionRollback(t, makeStore(t)) })
	t.Run("UnknownIDs", func(t *testing.T) { testUnknownIDs(t, makeStore(t)) })
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func createFolder(t *testing.T, s *repository.Store, name string) *models.Folder {
	t.Helper()
	ts := now()
	f := &models.Folder{Name: name, CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, s.Folders.Create(context.Background(), f))
	require.NotEmpty(t, f.ID)
	return f
}

func createNote(t *testing.T, s *repository.Store, folderID, title string) *models.Note {
	t.Helper()
	ts := now()
	n := &models.Note{FolderID: folderID, Title: title, Content: title + " body", CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, s.Notes.Create(context.Background(), n))
	require.NotEmpty(t, n.ID)
	return n
}

func testFolderCRUD(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	f := createFolder(t, s, "Work")

	got, err := s.Folders.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)
	assert.True(t, f.CreatedAt.Equal(got.CreatedAt), "created_at round trips")

	got.Name = "Projects"
	got.UpdatedAt = now().Add(time.Second)
	require.NoError(t, s.Folders.Update(ctx, got))

	again, err := s.Folders.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Projects", again.Name)
	assert.Equal(t, f.ID, again.ID)

	require.NoError(t, s.Folders.Delete(ctx, f.ID))
	_, err = s.Folders.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Folders.Delete(ctx, f.ID), domain.ErrNotFound)
	assert.ErrorIs(t, s.Folders.Update(ctx, got), domain.ErrNotFound)
}

func testFolderOrdering(t *testing.T, s *repository.Store) {
	ctx := context.Background()

	empty, err := s.Folders.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	createFolder(t, s, "Zebra")
	createFolder(t, s, "Alpha")
	createFolder(t, s, "Mango")

	folders, err := s.Folders.List(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mango", "Zebra"}, names)

	// Names compare bytewise on every backend: upper case sorts first
	createFolder(t, s, "apple")
	folders, err = s.Folders.List(ctx)
	require.NoError(t, err)

	names = names[:0]
	for _, f := range folders {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Alpha", "Mango", "Zebra", "apple"}, names)
}

func testNoteScoping(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	a := createFolder(t, s, "A")
	b := createFolder(t, s, "B")
	n := createNote(t, s, a.ID, "in A")

	got, err := s.Notes.GetByID(ctx, a.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "in A", got.Title)
	assert.Equal(t, a.ID, got.FolderID)

	// The same note id under another folder does not exist
	_, err = s.Notes.GetByID(ctx, b.ID, n.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, s.Notes.Delete(ctx, b.ID, n.ID), domain.ErrNotFound)

	moved := *got
	moved.FolderID = b.ID
	moved.Title = "hijacked"
	assert.ErrorIs(t, s.Notes.Update(ctx, &moved), domain.ErrNotFound)

	got.Title = "renamed"
	got.Content = ""
	got.UpdatedAt = now().Add(time.Second)
	require.NoError(t, s.Notes.Update(ctx, got))

	again, err := s.Notes.GetByID(ctx, a.ID, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.Title)
	assert.Equal(t, "", again.Content)

	require.NoError(t, s.Notes.Delete(ctx, a.ID, n.ID))
	_, err = s.Notes.GetByID(ctx, a.ID, n.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testNoteOrdering(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	f := createFolder(t, s, "Ordered")

	older := createNote(t, s, f.ID, "older")
	time.Sleep(5 * time.Millisecond)
	newer := createNote(t, s, f.ID, "newer")

	notes, err := s.Notes.ListByFolder(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID)
	assert.Equal(t, older.ID, notes[1].ID)

	// Touching the older note moves it to the front
	time.Sleep(5 * time.Millisecond)
	older.Title = "older, edited"
	older.UpdatedAt = now()
	require.NoError(t, s.Notes.Update(ctx, older))

	notes, err = s.Notes.ListByFolder(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, older.ID, notes[0].ID)

	other := createFolder(t, s, "Empty")
	none, err := s.Notes.ListByFolder(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func testDeleteByFolder(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	doomed := createFolder(t, s, "Doomed")
	kept := createFolder(t, s, "Kept")

	createNote(t, s, doomed.ID, "one")
	createNote(t, s, doomed.ID, "two")
	survivor := createNote(t, s, kept.ID, "survivor")

	n, err := s.Notes.DeleteByFolder(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, s.Folders.Delete(ctx, doomed.ID))

	remaining, err := s.Notes.ListByFolder(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = s.Notes.GetByID(ctx, kept.ID, survivor.ID)
	require.NoError(t, err)

	n, err = s.Notes.DeleteByFolder(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testTransactionRollback(t *testing.T, s *repository.Store) {
	if s.Driver == config.DriverMongo {
		t.Skip("mongo transactions need a replica set")
	}
	ctx := context.Background()
	f := createFolder(t, s, "Rollback")
	createNote(t, s, f.ID, "keep me")

	boom := assert.AnError
	err := s.TxManager.ExecTx(ctx, func(txCtx context.Context) error {
		if _, err := s.Notes.DeleteByFolder(txCtx, f.ID); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	notes, err := s.Notes.ListByFolder(ctx, f.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1, "delete inside a failed transaction is rolled back")
}

func testUnknownIDs(t *testing.T, s *repository.Store) {
	ctx := context.Background()
	f := createFolder(t, s, "Real")

	for _, id := range []string{"not-an-id", "", "00000000-0000-0000-0000-000000000000", "64b7f0c2a1b2c3d4e5f60718"} {
		_, err := s.Folders.GetByID(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "folder %q", id)

		_, err = s.Notes.GetByID(ctx, f.ID, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "note %q", id)
	}
}
