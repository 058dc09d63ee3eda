package spotify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non-2xx response from the Spotify API.
//
// The API wraps failures as {"error": {"status": 404, "message": "..."}};
// Message is empty when the body could not be decoded.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // Error message from Spotify
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify: status %d", e.StatusCode)
	}
	return fmt.Sprintf("spotify: status %d: %s", e.StatusCode, e.Message)
}

// Is reports whether target is a *Error with the same status code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Temporary returns true if the request may succeed when retried:
// rate limiting (429) and server errors (5xx).
func (e *Error) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// errorBody is the JSON error envelope returned by the API.
type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

var (
	// ErrArtistNotFound is returned when an artist search yields no results.
	ErrArtistNotFound = errors.New("spotify: artist not found")

	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("spotify: invalid configuration")
)
