package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/session"
)

// ListPicker backs the "add to list" popover on a movie card. It
// offers the signed-in user's own lists; the server rejects duplicate
// members and the rejection message is surfaced as-is.
type ListPicker struct {
	client  *api.Client
	session *session.Session
	logger  zerolog.Logger

	mu     sync.RWMutex
	state  State
	lists  []api.MovieListSummary
	status *StatusMessage
}

// NewListPicker creates an add-to-list picker.
func NewListPicker(client *api.Client, sess *session.Session, logger zerolog.Logger) *ListPicker {
	return &ListPicker{
		client:  client,
		session: sess,
		logger:  logger.With().Str("component", "list_picker").Logger(),
	}
}

// Load fetches the signed-in user's lists.
func (p *ListPicker) Load(ctx context.Context) error {
	user := p.session.Current()
	if user == nil {
		return ErrNotSignedIn
	}

	p.mu.Lock()
	p.state = StateLoading
	p.mu.Unlock()

	lists, err := p.client.GetUserLists(ctx, user.ID)
	if err != nil {
		p.logger.Warn().Err(err).Msg("List picker load failed")
		p.mu.Lock()
		p.state = StateFailed
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.lists = lists
	p.state = StateReady
	p.mu.Unlock()
	return nil
}

// Add appends a movie to one of the user's lists.
func (p *ListPicker) Add(ctx context.Context, listID, movieID int) error {
	user := p.session.Current()
	if user == nil {
		return ErrNotSignedIn
	}

	msg, err := p.client.AddMovieToList(ctx, user.ID, listID, movieID)
	if err != nil {
		p.setStatus(errorText(err), true)
		return err
	}

	p.setStatus(msg, false)
	return nil
}

// State returns the fetch state.
func (p *ListPicker) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Lists returns the loaded lists.
func (p *ListPicker) Lists() []api.MovieListSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]api.MovieListSummary(nil), p.lists...)
}

// Status returns the last mutation banner, or nil.
func (p *ListPicker) Status() *StatusMessage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.status == nil {
		return nil
	}
	m := *p.status
	return &m
}

func (p *ListPicker) setStatus(text string, isError bool) {
	p.mu.Lock()
	p.status = &StatusMessage{Text: text, IsError: isError}
	p.mu.Unlock()
}
