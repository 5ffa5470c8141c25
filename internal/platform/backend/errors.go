package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when there is no current session or user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoRows is returned by single-row reads and updates that match nothing.
	ErrNoRows = errors.New("no rows")

	// ErrUnfilteredDelete is returned by Delete when the query has no filters.
	ErrUnfilteredDelete = errors.New("delete requires at least one filter")
)

// APIError is a failure reported by the backend itself.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}

// Message returns the human-readable message of err when it is (or wraps) an
// *APIError, falling back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
