package handler

import (
	"log/slog"
	"net/http"

	"foldernotes/internal/domain"
	"foldernotes/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Unexpected errors are logged and reported with a generic message.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := domain.StatusCode(err)
	if status < http.StatusInternalServerError {
		httputil.RespondError(w, status, err.Error())
		return
	}

	logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", httputil.GetRequestID(r.Context()),
	)
	httputil.RespondError(w, status, "internal server error")
}
