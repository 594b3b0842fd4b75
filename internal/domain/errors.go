package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// NotFoundError indicates a folder or folder-scoped note was not found
type NotFoundError struct {
	ResourceType string // folder or note
	ResourceID   string
}

// NewNotFoundError reports that resourceType id does not exist
func NewNotFoundError(resourceType, id string) *NotFoundError {
	return &NotFoundError{ResourceType: resourceType, ResourceID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.ResourceType, e.ResourceID, ErrNotFound)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Is lets errors.Is match ErrNotFound
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError indicates a missing or malformed field
type ValidationError struct {
	Message string
}

// NewValidationError wraps a field validation failure
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Message: err.Error()}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
}

func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is lets errors.Is match ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StatusCode returns the HTTP status for err.
// Anything that is not a known domain error is a 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
