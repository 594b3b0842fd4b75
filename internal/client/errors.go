package client

import (
	"errors"
	"fmt"
	"net/http"

	"foldernotes/internal/domain"
)

// APIError is a non-2xx response from the folder notes API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is maps response statuses back onto the domain sentinels so callers
// can use errors.Is(err, domain.ErrNotFound) on both sides of the wire.
func (e *APIError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return target == domain.ErrNotFound
	case http.StatusBadRequest:
		return target == domain.ErrValidation
	}
	return false
}

// Message returns the text worth showing a user for err
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
