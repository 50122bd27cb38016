package api

import "fmt"

// Error is a structured business error decoded from the backend's
// {"error":{"message":...}} envelope. Any 4xx response surfaces as *Error so
// callers never inspect raw payloads.
type Error struct {
	Status  int    // HTTP status code
	Message string // Human-readable message from the envelope
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == status
}

// Message extracts a human-readable message from err, falling back to the
// provided default for anything that is not a structured business error.
func Message(err error, fallback string) string {
	if apiErr, ok := err.(*Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
