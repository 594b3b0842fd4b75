// Package seed loads folder and note fixtures into a store through the
// service layer, so seeded data passes the same validation as API writes.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"foldernotes/internal/domain/services"
)

//go:embed seed.yaml
var defaultFixtures []byte

// Fixtures is the YAML document describing seed data
type Fixtures struct {
	Folders []FolderFixture `yaml:"folders"`
}

type FolderFixture struct {
	Name  string        `yaml:"name"`
	Notes []NoteFixture `yaml:"notes"`
}

type NoteFixture struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// Result counts what a seeding run created
type Result struct {
	Folders int
	Notes   int
}

// Default returns the built-in fixtures
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse decodes fixtures from YAML
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Seeder creates fixtures through the folder and note services
type Seeder struct {
	folders services.FolderService
	notes   services.NoteService
	logger  *slog.Logger
}

func NewSeeder(folders services.FolderService, notes services.NoteService, logger *slog.Logger) *Seeder {
	return &Seeder{
		folders: folders,
		notes:   notes,
		logger:  logger,
	}
}

// Seed creates every folder and note in f. It stops at the first failure;
// anything created before it stays.
func (s *Seeder) Seed(ctx context.Context, f *Fixtures) (Result, error) {
	var res Result

	for _, fd := range f.Folders {
		folder, err := s.folders.CreateFolder(ctx, &services.CreateFolderRequest{Name: fd.Name})
		if err != nil {
			return res, fmt.Errorf("create folder %q: %w", fd.Name, err)
		}
		res.Folders++

		for _, nd := range fd.Notes {
			content := nd.Content
			note, err := s.notes.CreateNote(ctx, folder.ID, &services.CreateNoteRequest{
				Title:   nd.Title,
				Content: &content,
			})
			if err != nil {
				return res, fmt.Errorf("create note %q in %q: %w", nd.Title, fd.Name, err)
			}
			res.Notes++
			s.logger.Debug("seeded note", "folder", folder.Name, "note_id", note.ID)
		}

		s.logger.Info("seeded folder", "folder_id", folder.ID, "name", folder.Name, "notes", len(fd.Notes))
	}

	return res, nil
}
