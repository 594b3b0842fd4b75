package models

import (
	"time"
)

type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// FolderWithNotes is a folder together with every note it owns
type FolderWithNotes struct {
	Folder *Folder `json:"folder"`
	Notes  []Note  `json:"notes"`
}
