package handler

import "net/http"

// NewRouter registers every route on a Go 1.22 pattern mux
func NewRouter(folders *FolderHandler, notes *NoteHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /folders", folders.CreateFolder)
	mux.HandleFunc("GET /folders", folders.ListFolders)
	mux.HandleFunc("GET /folders/{folderId}", folders.GetFolder)
	mux.HandleFunc("PUT /folders/{folderId}", folders.UpdateFolder)
	mux.HandleFunc("DELETE /folders/{folderId}", folders.DeleteFolder)

	// Note routes, always scoped to a folder
	mux.HandleFunc("POST /notes/{folderId}", notes.CreateNote)
	mux.HandleFunc("GET /notes/{folderId}", notes.ListNotes)
	mux.HandleFunc("GET /notes/{folderId}/{noteId}", notes.GetNote)
	mux.HandleFunc("PUT /notes/{folderId}/{noteId}", notes.UpdateNote)
	mux.HandleFunc("DELETE /notes/{folderId}/{noteId}", notes.DeleteNote)

	return mux
}
