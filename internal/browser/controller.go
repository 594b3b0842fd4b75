package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"foldernotes/internal/client"
	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
)

// maxConcurrentFetches bounds the per-folder note fetches of one load
const maxConcurrentFetches = 8

// Prompt and confirmation texts
const (
	promptFolderName    = "Enter folder name:"
	promptNoteTitle     = "Enter note title:"
	promptNoteContent   = "Enter note content:"
	confirmFolderDelete = "Are you sure you want to delete this folder and all its notes?"
	confirmNoteDelete   = "Are you sure you want to delete this note?"
)

// API is the subset of the HTTP client the controller drives
type API interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	ListNotes(ctx context.Context, folderID string) ([]models.Note, error)
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	UpdateFolder(ctx context.Context, folderID, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, folderID string) (string, error)
	CreateNote(ctx context.Context, folderID, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, folderID, noteID string, title, content *string) (*models.Note, error)
	DeleteNote(ctx context.Context, folderID, noteID string) (string, error)
}

// Prompter asks the user for input.
// Prompt returns ok=false when the user cancels.
type Prompter interface {
	Prompt(message, initial string) (value string, ok bool)
	Confirm(message string) bool
	Alert(message string)
}

// View renders state snapshots
type View interface {
	Render(s Snapshot)
}

// Controller owns the transient view state of the folder browser.
// State changes happen under mu; network calls run outside it and a
// load whose generation is no longer current is dropped on arrival.
type Controller struct {
	api      API
	prompter Prompter
	view     View
	logger   *slog.Logger

	mu         sync.Mutex
	phase      Phase
	folders    []FolderNode
	expanded   map[string]bool
	selected   *Selection
	detail     *models.Note
	generation uint64
}

func NewController(api API, prompter Prompter, view View, logger *slog.Logger) *Controller {
	return &Controller{
		api:      api,
		prompter: prompter,
		view:     view,
		logger:   logger,
		phase:    PhaseIdle,
		expanded: make(map[string]bool),
	}
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Phase:   c.phase,
		Folders: cloneFolders(c.folders),
	}
	if c.selected != nil {
		sel := *c.selected
		s.Selected = &sel
	}
	if c.detail != nil {
		note := *c.detail
		s.Detail = &note
	}
	return s
}

// update applies fn under the lock and pushes the result to the view
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	fn()
	s := c.snapshotLocked()
	c.mu.Unlock()
	c.view.Render(s)
}

type folderResult struct {
	notes []models.Note
	err   error
}

// Load fetches the folder list and every folder's notes, then rebuilds the
// tree. A failed folder list alerts and leaves the previous tree in place.
// A failed note fetch only marks that folder.
func (c *Controller) Load(ctx context.Context) error {
	var gen uint64
	c.update(func() {
		c.generation++
		gen = c.generation
		c.phase = PhaseLoading
	})

	folders, err := c.api.ListFolders(ctx)
	if err != nil {
		// A delete may have cleared the selection since the last render
		current := false
		c.update(func() {
			if gen == c.generation {
				current = true
				c.phase = c.settledPhaseLocked()
			}
		})
		if current {
			c.prompter.Alert("Failed to load folders: " + client.Message(err))
		}
		return fmt.Errorf("list folders: %w", err)
	}

	var (
		resultsMu sync.Mutex
		results   = make(map[string]folderResult, len(folders))
		g         errgroup.Group
	)
	g.SetLimit(maxConcurrentFetches)
	for _, f := range folders {
		g.Go(func() error {
			notes, err := c.api.ListNotes(ctx, f.ID)
			resultsMu.Lock()
			results[f.ID] = folderResult{notes: notes, err: err}
			resultsMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding stale load", "generation", gen)
		return nil
	}

	tree := make([]FolderNode, 0, len(folders))
	for _, f := range folders {
		res := results[f.ID]
		node := FolderNode{Folder: f, Expanded: c.expanded[f.ID]}
		if res.err != nil {
			c.logger.Warn("failed to load folder notes", "folder_id", f.ID, "error", res.err)
			node.LoadErr = client.Message(res.err)
		} else {
			node.Notes = res.notes
		}
		tree = append(tree, node)
	}
	c.folders = tree

	// Keep the selection only if the note survived, refreshing its payload
	if c.selected != nil {
		if note, ok := findNote(tree, c.selected.FolderID, c.selected.NoteID); ok {
			n := *note
			c.detail = &n
		} else {
			c.clearSelectionLocked()
		}
	}
	c.phase = c.settledPhaseLocked()
	s := c.snapshotLocked()
	c.mu.Unlock()

	c.view.Render(s)
	return nil
}

func (c *Controller) settledPhaseLocked() Phase {
	switch {
	case c.selected != nil:
		return PhaseNoteSelected
	case c.folders != nil:
		return PhaseRendered
	default:
		return PhaseIdle
	}
}

func (c *Controller) clearSelectionLocked() {
	c.selected = nil
	c.detail = nil
}

// SelectNote shows a note already present in the tree. Nothing is fetched.
func (c *Controller) SelectNote(folderID, noteID string) error {
	c.mu.Lock()
	note, ok := findNote(c.folders, folderID, noteID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("note %s in folder %s: %w", noteID, folderID, domain.ErrNotFound)
	}
	n := *note
	c.selected = &Selection{FolderID: folderID, NoteID: noteID}
	c.detail = &n
	c.phase = PhaseNoteSelected
	s := c.snapshotLocked()
	c.mu.Unlock()

	c.view.Render(s)
	return nil
}

// ClearSelection resets the detail pane to the placeholder
func (c *Controller) ClearSelection() {
	c.update(func() {
		c.clearSelectionLocked()
		c.phase = c.settledPhaseLocked()
	})
}

// ToggleFolder expands or collapses a folder's notes
func (c *Controller) ToggleFolder(folderID string) error {
	c.mu.Lock()
	i, ok := findFolder(c.folders, folderID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	c.expanded[folderID] = !c.expanded[folderID]
	c.folders[i].Expanded = c.expanded[folderID]
	s := c.snapshotLocked()
	c.mu.Unlock()

	c.view.Render(s)
	return nil
}

// CreateFolder prompts for a name and creates the folder
func (c *Controller) CreateFolder(ctx context.Context) error {
	name, ok := c.prompter.Prompt(promptFolderName, "")
	if !ok || name == "" {
		return nil
	}

	if _, err := c.api.CreateFolder(ctx, name); err != nil {
		return c.fail("Failed to create folder", err)
	}
	return c.Load(ctx)
}

// RenameFolder prompts for a new name, prefilled with the current one
func (c *Controller) RenameFolder(ctx context.Context, folderID string) error {
	c.mu.Lock()
	i, ok := findFolder(c.folders, folderID)
	var current string
	if ok {
		current = c.folders[i].Folder.Name
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	name, ok := c.prompter.Prompt(promptFolderName, current)
	if !ok || name == "" || name == current {
		return nil
	}

	if _, err := c.api.UpdateFolder(ctx, folderID, name); err != nil {
		return c.fail("Failed to rename folder", err)
	}
	return c.Load(ctx)
}

// DeleteFolder asks for confirmation, then deletes the folder and its notes
func (c *Controller) DeleteFolder(ctx context.Context, folderID string) error {
	if !c.prompter.Confirm(confirmFolderDelete) {
		return nil
	}

	if _, err := c.api.DeleteFolder(ctx, folderID); err != nil {
		return c.fail("Failed to delete folder", err)
	}

	c.update(func() {
		if c.selected != nil && c.selected.FolderID == folderID {
			c.clearSelectionLocked()
		}
		delete(c.expanded, folderID)
	})
	return c.Load(ctx)
}

// CreateNote prompts for a title and content, creates the note in folderID
// and selects it once the tree is reloaded.
func (c *Controller) CreateNote(ctx context.Context, folderID string) error {
	title, ok := c.prompter.Prompt(promptNoteTitle, "")
	if !ok || title == "" {
		return nil
	}
	// A cancelled content prompt still creates the note, with empty content
	content, _ := c.prompter.Prompt(promptNoteContent, "")

	note, err := c.api.CreateNote(ctx, folderID, title, content)
	if err != nil {
		return c.fail("Failed to create note", err)
	}

	c.update(func() {
		c.selected = &Selection{FolderID: folderID, NoteID: note.ID}
		c.detail = note
		c.expanded[folderID] = true
	})
	return c.Load(ctx)
}

// EditNote prompts for a new title and content, sending only what changed
func (c *Controller) EditNote(ctx context.Context, folderID, noteID string) error {
	c.mu.Lock()
	note, ok := findNote(c.folders, folderID, noteID)
	var current models.Note
	if ok {
		current = *note
	}
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("note %s in folder %s: %w", noteID, folderID, domain.ErrNotFound)
	}

	title, ok := c.prompter.Prompt(promptNoteTitle, current.Title)
	if !ok || title == "" {
		return nil
	}
	content, ok := c.prompter.Prompt(promptNoteContent, current.Content)
	if !ok {
		return nil
	}

	var titlePtr, contentPtr *string
	if title != current.Title {
		titlePtr = &title
	}
	if content != current.Content {
		contentPtr = &content
	}
	if titlePtr == nil && contentPtr == nil {
		return nil
	}

	if _, err := c.api.UpdateNote(ctx, folderID, noteID, titlePtr, contentPtr); err != nil {
		return c.fail("Failed to update note", err)
	}
	return c.Load(ctx)
}

// DeleteNote asks for confirmation, then deletes the note
func (c *Controller) DeleteNote(ctx context.Context, folderID, noteID string) error {
	if !c.prompter.Confirm(confirmNoteDelete) {
		return nil
	}

	if _, err := c.api.DeleteNote(ctx, folderID, noteID); err != nil {
		return c.fail("Failed to delete note", err)
	}

	c.update(func() {
		if c.selected != nil && c.selected.FolderID == folderID && c.selected.NoteID == noteID {
			c.clearSelectionLocked()
		}
	})
	return c.Load(ctx)
}

// fail alerts the user and leaves the state untouched
func (c *Controller) fail(action string, err error) error {
	c.logger.Warn(action, "error", err)
	c.prompter.Alert(action + ": " + client.Message(err))
	return fmt.Errorf("%s: %w", action, err)
}
