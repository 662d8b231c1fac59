package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches any 404 response.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized matches any 401 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRatingOutOfRange is returned before transmission when a rating
	// value falls outside [0,5].
	ErrRatingOutOfRange = errors.New("rating must be an integer between 0 and 5")
)

// StatusError is an HTTP error response from the backend: the server was
// reachable but rejected the request. Message carries the human-readable
// string from the `{error: ...}` body. A request that never completed is
// a different failure kind and is never represented as a StatusError.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Code)
}

// Is lets callers match the not-found and unauthorized subtypes with
// errors.Is without inspecting status codes.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	}
	return false
}

// IsHTTPError reports whether err is an HTTP error response (as opposed
// to a network failure) and returns it.
func IsHTTPError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
