package api

import (
	"errors"
	"fmt"
)

// InvalidTokenMessage is the exact body message the backend sends when the
// bearer token is no longer accepted.
const InvalidTokenMessage = "Invalid Token"

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
}

// InvalidSession reports whether the response matches the backend's
// invalid-token signature: status 401 or 400 with the exact message.
func (e *APIError) InvalidSession() bool {
	if e == nil {
		return false
	}
	return (e.Status == 401 || e.Status == 400) && e.Message == InvalidTokenMessage
}

// IsInvalidSession reports whether err carries the invalid-token signature.
func IsInvalidSession(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.InvalidSession()
}

// MessageOf returns the server-provided message carried by err, or fallback
// when there is none.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
