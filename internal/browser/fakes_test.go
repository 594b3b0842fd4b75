package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"foldernotes/internal/client"
	"foldernotes/internal/domain/models"
)

// fakeAPI is an in-memory API with hooks for ordering tests
type fakeAPI struct {
	mu      sync.Mutex
	seq     int
	folders map[string]models.Folder
	notes   map[string][]models.Note

	listFoldersCalls int
	listNotesCalls   int
	lastUpdate       *updateCall

	// listFoldersHook runs after the folder list is captured; a non-nil
	// error fails that call
	listFoldersHook func(call int) error
	notesDelay      map[string]time.Duration
	notesErr        map[string]error
	failNext        error
}

type updateCall struct {
	title, content *string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		folders:    make(map[string]models.Folder),
		notes:      make(map[string][]models.Note),
		notesDelay: make(map[string]time.Duration),
		notesErr:   make(map[string]error),
	}
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeAPI) addFolder(name string) models.Folder {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder := models.Folder{ID: f.nextID("f"), Name: name}
	f.folders[folder.ID] = folder
	return folder
}

func (f *fakeAPI) addNote(folderID, title, content string) models.Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	note := models.Note{ID: f.nextID("n"), FolderID: folderID, Title: title, Content: content}
	f.notes[folderID] = append([]models.Note{note}, f.notes[folderID]...)
	return note
}

func (f *fakeAPI) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeAPI) ListFolders(ctx context.Context) ([]models.Folder, error) {
	f.mu.Lock()
	f.listFoldersCalls++
	call := f.listFoldersCalls
	if err := f.takeFailure(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	out := make([]models.Folder, 0, len(f.folders))
	for _, folder := range f.folders {
		out = append(out, folder)
	}
	hook := f.listFoldersHook
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if hook != nil {
		if err := hook(call); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (f *fakeAPI) ListNotes(ctx context.Context, folderID string) ([]models.Note, error) {
	f.mu.Lock()
	f.listNotesCalls++
	delay := f.notesDelay[folderID]
	err := f.notesErr[folderID]
	out := append([]models.Note{}, f.notes[folderID]...)
	f.mu.Unlock()

	time.Sleep(delay)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeAPI) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	f.mu.Lock()
	err := f.takeFailure()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	folder := f.addFolder(name)
	return &folder, nil
}

func (f *fakeAPI) UpdateFolder(ctx context.Context, folderID, name string) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	folder := f.folders[folderID]
	folder.Name = name
	f.folders[folderID] = folder
	return &folder, nil
}

func (f *fakeAPI) DeleteFolder(ctx context.Context, folderID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return "", err
	}
	delete(f.folders, folderID)
	delete(f.notes, folderID)
	return "Folder and its notes deleted successfully", nil
}

func (f *fakeAPI) CreateNote(ctx context.Context, folderID, title, content string) (*models.Note, error) {
	f.mu.Lock()
	err := f.takeFailure()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	note := f.addNote(folderID, title, content)
	return &note, nil
}

func (f *fakeAPI) UpdateNote(ctx context.Context, folderID, noteID string, title, content *string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	f.lastUpdate = &updateCall{title: title, content: content}
	for i, n := range f.notes[folderID] {
		if n.ID != noteID {
			continue
		}
		if title != nil {
			n.Title = *title
		}
		if content != nil {
			n.Content = *content
		}
		f.notes[folderID][i] = n
		return &n, nil
	}
	return nil, &client.APIError{Status: 404, Message: "note not found"}
}

func (f *fakeAPI) DeleteNote(ctx context.Context, folderID, noteID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return "", err
	}
	notes := f.notes[folderID]
	for i, n := range notes {
		if n.ID == noteID {
			f.notes[folderID] = append(notes[:i:i], notes[i+1:]...)
			return "Note deleted successfully", nil
		}
	}
	return "", &client.APIError{Status: 404, Message: "note not found"}
}

type answer struct {
	value string
	ok    bool
}

// fakePrompter replays scripted answers and records alerts
type fakePrompter struct {
	mu       sync.Mutex
	answers  []answer
	prompts  []string
	confirm  bool
	confirms int
	alerts   []string
}

func (p *fakePrompter) Prompt(message, initial string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, message)
	if len(p.answers) == 0 {
		return "", false
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.value, a.ok
}

func (p *fakePrompter) Confirm(message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms++
	return p.confirm
}

func (p *fakePrompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

// recordingView keeps every snapshot it is given
type recordingView struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

func (v *recordingView) Render(s Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshots = append(v.snapshots, s)
}

func (v *recordingView) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.snapshots)
}

var errBoom = errors.New("boom")

func newTestController(api API, p Prompter, v View) *Controller {
	return NewController(api, p, v, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
