// Package session tracks the identity bound to the backend session
// cookie. A nil current user means the session is anonymous.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
)

// Session is the authoritative holder of the current user identity.
// It never refreshes implicitly: identity changes only through Init,
// Login, Logout, Register, or an explicit Resync.
type Session struct {
	client *api.Client
	logger zerolog.Logger

	mu   sync.RWMutex
	user *api.User
}

// New creates a session bound to the given API client.
func New(client *api.Client, logger zerolog.Logger) *Session {
	return &Session{
		client: client,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Init establishes the starting identity and bootstraps the
// anti-forgery cookie, so the session's first write already carries a
// CSRF token. If a session cookie is present its user is fetched; a
// rejected cookie degrades to anonymous rather than failing startup.
func (s *Session) Init(ctx context.Context) error {
	if err := s.client.EnsureCSRFToken(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("CSRF bootstrap failed, retrying on first write")
	}

	if !s.client.HasSession() {
		s.logger.Debug().Msg("No session cookie, starting anonymous")
		return nil
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.logger.Info().Msg("Stale session cookie rejected, starting anonymous")
			return nil
		}
		return err
	}

	s.set(user)
	s.logger.Info().Str("username", user.Username).Msg("Session restored")
	return nil
}

// Current returns a copy of the current user, or nil when anonymous.
func (s *Session) Current() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Login authenticates and adopts the returned identity. The
// anti-forgery cookie is fetched first if Init's bootstrap did not
// stick.
func (s *Session) Login(ctx context.Context, username, password string) (*api.User, error) {
	if err := s.client.EnsureCSRFToken(ctx); err != nil {
		return nil, err
	}

	user, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	s.set(user)
	s.logger.Info().Str("username", user.Username).Msg("Logged in")
	return s.Current(), nil
}

// Logout ends the backend session and drops the identity. The local
// identity is cleared even if the backend call fails.
func (s *Session) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)
	s.set(nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Logout request failed, identity dropped locally")
		return err
	}
	s.logger.Info().Msg("Logged out")
	return nil
}

// Register creates an account and adopts the new identity.
func (s *Session) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	if err := s.client.EnsureCSRFToken(ctx); err != nil {
		return nil, err
	}

	user, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	s.set(user)
	s.logger.Info().Str("username", user.Username).Msg("Registered")
	return s.Current(), nil
}

// Resync re-fetches the identity behind the session cookie. It is the
// only way to pick up identity changes made outside this process. A
// rejected cookie clears the identity.
func (s *Session) Resync(ctx context.Context) error {
	if !s.client.HasSession() {
		s.set(nil)
		return nil
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.set(nil)
			s.logger.Info().Msg("Session no longer valid, now anonymous")
			return nil
		}
		return err
	}

	s.set(user)
	return nil
}

func (s *Session) set(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}
