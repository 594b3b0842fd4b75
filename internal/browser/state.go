// Package browser holds the client-side view state for browsing folders
// and notes: the folder tree, the selected note and the detail pane.
package browser

import (
	"fmt"
	"strconv"
	"strings"

	"foldernotes/internal/domain"
	"foldernotes/internal/domain/models"
)

// Phase is the controller's position in its load/select cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseRendered
	PhaseNoteSelected
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseRendered:
		return "rendered"
	case PhaseNoteSelected:
		return "note-selected"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DetailPlaceholder is shown in the detail pane when no note is selected
const DetailPlaceholder = "Select a note to view"

// FolderNode is one folder of the rendered tree
type FolderNode struct {
	Folder   models.Folder
	Notes    []models.Note
	Expanded bool
	// LoadErr is set when this folder's notes could not be fetched
	LoadErr string
}

// Selection identifies the selected note
type Selection struct {
	FolderID string
	NoteID   string
}

// Snapshot is an immutable copy of the controller state handed to a View
type Snapshot struct {
	Phase    Phase
	Folders  []FolderNode
	Selected *Selection
	// Detail is the note shown in the detail pane, nil for the placeholder
	Detail *models.Note
}

// DetailTitle returns the heading of the detail pane
func (s Snapshot) DetailTitle() string {
	if s.Detail == nil {
		return DetailPlaceholder
	}
	return s.Detail.Title
}

// IsSelected reports whether noteID in folderID is the selected note
func (s Snapshot) IsSelected(folderID, noteID string) bool {
	return s.Selected != nil && s.Selected.FolderID == folderID && s.Selected.NoteID == noteID
}

// Resolve turns a 1-based tree reference into ids.
// "2" names the second folder, "2.3" the third note in it.
func (s Snapshot) Resolve(ref string) (folderID, noteID string, err error) {
	folderPart, notePart, hasNote := strings.Cut(strings.TrimSpace(ref), ".")

	fi, err := strconv.Atoi(folderPart)
	if err != nil || fi < 1 || fi > len(s.Folders) {
		return "", "", fmt.Errorf("%w: no folder %q", domain.ErrNotFound, folderPart)
	}
	node := s.Folders[fi-1]
	if !hasNote {
		return node.Folder.ID, "", nil
	}

	ni, err := strconv.Atoi(notePart)
	if err != nil || ni < 1 || ni > len(node.Notes) {
		return "", "", fmt.Errorf("%w: no note %q in folder %q", domain.ErrNotFound, notePart, node.Folder.Name)
	}
	return node.Folder.ID, node.Notes[ni-1].ID, nil
}

func cloneFolders(nodes []FolderNode) []FolderNode {
	out := make([]FolderNode, len(nodes))
	for i, n := range nodes {
		out[i] = n
		out[i].Notes = append([]models.Note(nil), n.Notes...)
	}
	return out
}

func findNote(nodes []FolderNode, folderID, noteID string) (*models.Note, bool) {
	for _, n := range nodes {
		if n.Folder.ID != folderID {
			continue
		}
		for i := range n.Notes {
			if n.Notes[i].ID == noteID {
				return &n.Notes[i], true
			}
		}
	}
	return nil, false
}

func findFolder(nodes []FolderNode, folderID string) (int, bool) {
	for i, n := range nodes {
		if n.Folder.ID == folderID {
			return i, true
		}
	}
	return -1, false
}
