package models

import (
	"time"
)

type Note struct {
	ID        string    `json:"id" db:"id"`
	FolderID  string    `json:"folder" db:"folder_id"` // Owning folder, never reassigned
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"` // May be empty
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
