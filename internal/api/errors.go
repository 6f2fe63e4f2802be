package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when the server gives us nothing usable.
const FallbackMessage = "Something went wrong"

// Error is a non-2xx response from the backend. The human-readable message is
// extracted from the response envelope when present.
type Error struct {
	Status  int
	Message string
	Path    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d, path %s)", e.Message, e.Status, e.Path)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// MessageOf extracts the displayable message from any error chain, falling
// back to err.Error() for transport-level failures.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
