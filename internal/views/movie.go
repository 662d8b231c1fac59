package views

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/metadata"
)

// MovieView is the movie detail screen. The primary record and the
// similar-movies rail load independently: a recommendation failure
// never degrades an already loaded movie.
type MovieView struct {
	client   *api.Client
	resolver *metadata.Resolver
	logger   zerolog.Logger

	mu              sync.RWMutex
	state           State
	movie           *api.Movie
	recState        State
	recommendations []api.RecommendedMovie
}

// NewMovieView creates a movie detail view.
func NewMovieView(client *api.Client, resolver *metadata.Resolver, logger zerolog.Logger) *MovieView {
	return &MovieView{
		client:   client,
		resolver: resolver,
		logger:   logger.With().Str("component", "movie_view").Logger(),
	}
}

// Load fetches the movie and resolves its artwork. An unknown id lands
// in StateNotFound, a transport or server failure in StateFailed.
func (v *MovieView) Load(ctx context.Context, movieID int) {
	v.setState(StateLoading)

	movie, err := v.client.GetMovie(ctx, movieID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			v.setState(StateNotFound)
			return
		}
		v.logger.Warn().Err(err).Int("movie_id", movieID).Msg("Movie load failed")
		v.setState(StateFailed)
		return
	}

	// Artwork lookups are total; a metadata outage yields placeholders,
	// not a failed view.
	movie.PosterURL = v.resolver.MoviePoster(ctx, movie.ID)
	v.resolver.PersonProfiles(ctx, movie.Directors)
	v.resolver.PersonProfiles(ctx, movie.Actors)
	for i := range movie.OscarWins {
		if p := movie.OscarWins[i].Person; p != nil {
			p.ProfileURL = v.resolver.PersonProfile(ctx, p.ID)
		}
	}

	v.mu.Lock()
	v.movie = movie
	v.state = StateReady
	v.mu.Unlock()
}

// LoadRecommendations fetches the similar-movies rail with its posters.
func (v *MovieView) LoadRecommendations(ctx context.Context, movieID int) {
	v.mu.Lock()
	v.recState = StateLoading
	v.mu.Unlock()

	recs, err := v.client.GetRecommendations(ctx, movieID)
	if err != nil {
		v.logger.Warn().Err(err).Int("movie_id", movieID).Msg("Recommendations load failed")
		v.mu.Lock()
		if statusErr, ok := api.IsHTTPError(err); ok && statusErr.Code == http.StatusNotFound {
			v.recState = StateNotFound
		} else {
			v.recState = StateFailed
		}
		v.recommendations = nil
		v.mu.Unlock()
		return
	}

	v.resolver.RecommendedPosters(ctx, recs)

	v.mu.Lock()
	v.recommendations = recs
	v.recState = StateReady
	v.mu.Unlock()
}

// State returns the primary fetch state.
func (v *MovieView) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Movie returns the loaded record, or nil outside StateReady.
func (v *MovieView) Movie() *api.Movie {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state != StateReady {
		return nil
	}
	m := *v.movie
	return &m
}

// RecommendationsState returns the similar-movies fetch state.
func (v *MovieView) RecommendationsState() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.recState
}

// Recommendations returns the loaded similar movies.
func (v *MovieView) Recommendations() []api.RecommendedMovie {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]api.RecommendedMovie(nil), v.recommendations...)
}

func (v *MovieView) setState(s State) {
	v.mu.Lock()
	v.state = s
	v.mu.Unlock()
}
