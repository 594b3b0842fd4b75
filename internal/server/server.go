// Package server assembles the services, handlers and middleware
// into the HTTP handler served by cmd/server.
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"foldernotes/internal/handler"
	"foldernotes/internal/middleware"
	"foldernotes/internal/repository"
	"foldernotes/internal/service"
)

// Options configure the HTTP stack
type Options struct {
	// CORSOrigins is a comma separated list of allowed origins
	CORSOrigins string
}

// NewHandler wires repositories into services and handlers.
// Order: CORS → request log → recovery → routes.
func NewHandler(store *repository.Store, opts Options, logger *slog.Logger) http.Handler {
	validator := service.NewResourceValidator(store.Folders)
	folderService := service.NewFolderService(store.Folders, store.Notes, store.TxManager, logger)
	noteService := service.NewNoteService(store.Notes, store.TxManager, validator, logger)

	mux := handler.NewRouter(
		handler.NewFolderHandler(folderService, logger),
		handler.NewNoteHandler(noteService, logger),
		handler.NewHealthHandler(store.Admin, logger),
	)

	// Apply middleware in reverse order (they wrap each other)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: splitOrigins(opts.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return corsHandler.Handler(h)
}

// New creates the HTTP server with the timeouts used in production
func New(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
