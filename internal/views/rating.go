package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/session"
)

// RatingWidget is the per-movie star control. Anonymous users see it
// read-only: no write path is reachable without a signed-in session.
type RatingWidget struct {
	client  *api.Client
	session *session.Session
	logger  zerolog.Logger
	movieID int

	mu     sync.RWMutex
	state  State
	rating *api.Rating
}

// NewRatingWidget creates the rating control for one movie.
func NewRatingWidget(client *api.Client, sess *session.Session, movieID int, logger zerolog.Logger) *RatingWidget {
	return &RatingWidget{
		client:  client,
		session: sess,
		logger:  logger.With().Str("component", "rating").Int("movie_id", movieID).Logger(),
		movieID: movieID,
	}
}

// Load fetches the signed-in user's rating. For anonymous sessions the
// widget goes straight to ready with no rating.
func (w *RatingWidget) Load(ctx context.Context) {
	user := w.session.Current()
	if user == nil {
		w.mu.Lock()
		w.rating = nil
		w.state = StateReady
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.state = StateLoading
	w.mu.Unlock()

	rating, err := w.client.GetRating(ctx, w.movieID, user.ID)
	if err != nil {
		w.logger.Warn().Err(err).Msg("Rating load failed")
		w.mu.Lock()
		w.state = StateFailed
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.rating = rating
	w.state = StateReady
	w.mu.Unlock()
}

// Set submits a score in [0,5]. A first score creates the rating,
// later ones update it in place.
func (w *RatingWidget) Set(ctx context.Context, value int) error {
	user := w.session.Current()
	if user == nil {
		return ErrNotSignedIn
	}

	w.mu.RLock()
	existing := w.rating
	w.mu.RUnlock()

	var err error
	if existing == nil {
		_, err = w.client.AddRating(ctx, w.movieID, user.ID, value)
	} else {
		_, err = w.client.UpdateRating(ctx, w.movieID, existing.ID, value)
	}
	if err != nil {
		return err
	}

	w.Load(ctx)
	return nil
}

// Clear removes the user's rating.
func (w *RatingWidget) Clear(ctx context.Context) error {
	if w.session.Current() == nil {
		return ErrNotSignedIn
	}

	w.mu.RLock()
	existing := w.rating
	w.mu.RUnlock()
	if existing == nil {
		return nil
	}

	if _, err := w.client.DeleteRating(ctx, w.movieID, existing.ID); err != nil {
		return err
	}

	w.Load(ctx)
	return nil
}

// State returns the fetch state.
func (w *RatingWidget) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Rating returns the user's current rating, nil when unrated or
// anonymous.
func (w *RatingWidget) Rating() *api.Rating {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.rating == nil {
		return nil
	}
	r := *w.rating
	return &r
}
