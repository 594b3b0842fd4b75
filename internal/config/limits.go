package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	MaxNoteTitleLength = 255
)
