package views

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/metadata"
	"github.com/cinetrail/cinetrail/internal/session"
)

// ListView is the movie list detail screen. Removal is owner-gated;
// after a successful removal the list is re-fetched so membership
// always reflects the server.
type ListView struct {
	client   *api.Client
	resolver *metadata.Resolver
	session  *session.Session
	logger   zerolog.Logger

	mu     sync.RWMutex
	state  State
	list   *api.MovieList
	status *StatusMessage
}

// NewListView creates a list detail view.
func NewListView(client *api.Client, resolver *metadata.Resolver, sess *session.Session, logger zerolog.Logger) *ListView {
	return &ListView{
		client:   client,
		resolver: resolver,
		session:  sess,
		logger:   logger.With().Str("component", "list_view").Logger(),
	}
}

// Load fetches the list and resolves member posters.
func (v *ListView) Load(ctx context.Context, listID int) {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	list, err := v.client.GetList(ctx, listID)
	if err != nil {
		v.mu.Lock()
		if errors.Is(err, api.ErrNotFound) {
			v.state = StateNotFound
		} else {
			v.logger.Warn().Err(err).Int("list_id", listID).Msg("List load failed")
			v.state = StateFailed
		}
		v.mu.Unlock()
		return
	}

	v.resolver.ListMoviePosters(ctx, list.Movies)

	v.mu.Lock()
	v.list = list
	v.state = StateReady
	v.mu.Unlock()
}

// CanEdit reports whether the signed-in user owns the loaded list.
func (v *ListView) CanEdit() bool {
	user := v.session.Current()
	if user == nil {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.list != nil && v.list.Owner.ID == user.ID
}

// RemoveMovie removes a member from the list and re-fetches it. Only
// the owner may remove.
func (v *ListView) RemoveMovie(ctx context.Context, movieID int) error {
	if !v.CanEdit() {
		return ErrNotOwner
	}

	v.mu.RLock()
	listID := v.list.ID
	v.mu.RUnlock()

	msg, err := v.client.RemoveMovieFromList(ctx, listID, movieID)
	if err != nil {
		v.setStatus(errorText(err), true)
		return err
	}

	v.setStatus(msg, false)
	v.Load(ctx, listID)
	return nil
}

// State returns the fetch state.
func (v *ListView) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// List returns the loaded list, or nil outside StateReady.
func (v *ListView) List() *api.MovieList {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state != StateReady {
		return nil
	}
	l := *v.list
	return &l
}

// Status returns the last mutation banner, or nil.
func (v *ListView) Status() *StatusMessage {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.status == nil {
		return nil
	}
	m := *v.status
	return &m
}

func (v *ListView) setStatus(text string, isError bool) {
	v.mu.Lock()
	v.status = &StatusMessage{Text: text, IsError: isError}
	v.mu.Unlock()
}
