package views

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/session"
)

const (
	commentMinLen = 2
	commentMaxLen = 1000
)

// CommentsSection is the review thread under a movie. Every successful
// write re-fetches the thread so displayed timestamps and ordering
// always come from the server. At most one comment is in edit mode at
// a time.
type CommentsSection struct {
	client  *api.Client
	session *session.Session
	logger  zerolog.Logger
	movieID int

	mu        sync.RWMutex
	state     State
	comments  []api.Comment
	editingID int
	status    *StatusMessage
}

// NewCommentsSection creates the comments section for one movie.
func NewCommentsSection(client *api.Client, sess *session.Session, movieID int, logger zerolog.Logger) *CommentsSection {
	return &CommentsSection{
		client:  client,
		session: sess,
		logger:  logger.With().Str("component", "comments").Int("movie_id", movieID).Logger(),
		movieID: movieID,
	}
}

// Load fetches the thread.
func (s *CommentsSection) Load(ctx context.Context) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	comments, err := s.client.GetComments(ctx, s.movieID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Comments load failed")
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.comments = comments
	s.state = StateReady
	s.mu.Unlock()
}

// Add posts a new comment as the signed-in user and reloads the thread.
func (s *CommentsSection) Add(ctx context.Context, text string) error {
	user := s.session.Current()
	if user == nil {
		return ErrNotSignedIn
	}
	if !validCommentLength(text) {
		return ErrCommentLength
	}

	msg, err := s.client.AddComment(ctx, s.movieID, user.ID, text)
	if err != nil {
		s.setStatus(errorText(err), true)
		return err
	}

	s.setStatus(msg, false)
	s.Load(ctx)
	return nil
}

// StartEdit puts one comment into edit mode, replacing any other.
func (s *CommentsSection) StartEdit(commentID int) {
	s.mu.Lock()
	s.editingID = commentID
	s.mu.Unlock()
}

// CancelEdit leaves edit mode without saving.
func (s *CommentsSection) CancelEdit() {
	s.mu.Lock()
	s.editingID = 0
	s.mu.Unlock()
}

// EditingID returns the id of the comment in edit mode, 0 for none.
func (s *CommentsSection) EditingID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editingID
}

// SaveEdit submits the edited text for the comment in edit mode and
// reloads the thread.
func (s *CommentsSection) SaveEdit(ctx context.Context, text string) error {
	s.mu.RLock()
	commentID := s.editingID
	s.mu.RUnlock()
	if commentID == 0 {
		return nil
	}
	if !validCommentLength(text) {
		return ErrCommentLength
	}

	msg, err := s.client.EditComment(ctx, s.movieID, commentID, text)
	if err != nil {
		s.setStatus(errorText(err), true)
		return err
	}

	s.CancelEdit()
	s.setStatus(msg, false)
	s.Load(ctx)
	return nil
}

// Delete removes a comment and reloads the thread.
func (s *CommentsSection) Delete(ctx context.Context, commentID int) error {
	msg, err := s.client.DeleteComment(ctx, s.movieID, commentID)
	if err != nil {
		s.setStatus(errorText(err), true)
		return err
	}

	s.setStatus(msg, false)
	s.Load(ctx)
	return nil
}

// State returns the fetch state.
func (s *CommentsSection) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Comments returns the loaded thread.
func (s *CommentsSection) Comments() []api.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Comment(nil), s.comments...)
}

// Status returns the last mutation banner, or nil.
func (s *CommentsSection) Status() *StatusMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil
	}
	m := *s.status
	return &m
}

func (s *CommentsSection) setStatus(text string, isError bool) {
	s.mu.Lock()
	s.status = &StatusMessage{Text: text, IsError: isError}
	s.mu.Unlock()
}

func validCommentLength(text string) bool {
	n := utf8.RuneCountInString(text)
	return n >= commentMinLen && n <= commentMaxLen
}
