// Package views implements the presentation state machines behind each
// screen: entity detail views, the profile and list editors, the
// comments section, and the rating widget. Views fetch through the API
// client, enrich through the image resolver, and expose immutable
// snapshots of their state.
package views

import (
	"errors"

	"github.com/cinetrail/cinetrail/internal/api"
)

// State is the lifecycle of a view's primary fetch. A view leaves
// StateLoading on every outcome; a failed fetch lands in StateNotFound
// or StateFailed, never in a perpetual loading state.
type State int

const (
	StateLoading State = iota
	StateReady
	StateNotFound
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusMessage is a transient banner shown after a mutation attempt.
type StatusMessage struct {
	Text    string
	IsError bool
}

var (
	// ErrNotSignedIn gates mutations that require an authenticated user.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrNotOwner gates mutations reserved for a resource's owner.
	ErrNotOwner = errors.New("not the owner")

	// ErrCommentLength rejects comments outside the allowed 2-1000
	// character range before transmission.
	ErrCommentLength = errors.New("comment must be between 2 and 1000 characters")
)

// errorText turns a failed mutation into banner text. Server-sent
// error messages are shown verbatim; transport failures get a generic
// line since their detail is already logged.
func errorText(err error) string {
	if statusErr, ok := api.IsHTTPError(err); ok && statusErr.Message != "" {
		return statusErr.Message
	}
	return "Something went wrong. Please try again."
}
