// Package metadata resolves artwork for catalog entities. Image URLs
// never come from the primary API; they are looked up here and a
// placeholder is substituted whenever a lookup fails.
package metadata

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/config"
	"github.com/cinetrail/cinetrail/internal/metadata/tmdb"
)

// Image sizes requested from the metadata service.
const (
	posterSize  = "w342"
	profileSize = "w342"
)

// Resolver turns catalog entities into displayable image URLs. All
// methods are total: failures of any kind yield the placeholder.
type Resolver struct {
	tmdb   *tmdb.Client
	config config.ResolverConfig
	logger zerolog.Logger
}

// NewResolver creates a new image resolver.
func NewResolver(tmdbClient *tmdb.Client, cfg config.ResolverConfig, logger zerolog.Logger) *Resolver {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Resolver{
		tmdb:   tmdbClient,
		config: cfg,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// MoviePoster resolves a poster URL for a movie by its metadata-service
// ID. Catalog movie ids are metadata-service ids.
func (r *Resolver) MoviePoster(ctx context.Context, movieID int) string {
	if !r.tmdb.IsConfigured() {
		return r.config.PosterPlaceholder
	}

	details, err := r.tmdb.GetMovie(ctx, movieID)
	if err != nil {
		r.logger.Debug().Err(err).Int("movie_id", movieID).Msg("Poster lookup failed")
		return r.config.PosterPlaceholder
	}
	if details.PosterPath == nil {
		return r.config.PosterPlaceholder
	}

	return r.tmdb.GetImageURL(*details.PosterPath, posterSize)
}

// MoviePosterByTitle resolves a poster URL for a movie with no known
// metadata-service ID, by title and release year. The first search hit
// wins, so it can land on the wrong film; prefer MoviePoster when an
// id is available.
func (r *Resolver) MoviePosterByTitle(ctx context.Context, title string, year int) string {
	if !r.tmdb.IsConfigured() {
		return r.config.PosterPlaceholder
	}

	results, err := r.tmdb.SearchMovies(ctx, title, year)
	if err != nil {
		r.logger.Debug().Err(err).Str("title", title).Msg("Poster lookup failed")
		return r.config.PosterPlaceholder
	}
	if len(results) == 0 || results[0].PosterPath == nil {
		return r.config.PosterPlaceholder
	}

	return r.tmdb.GetImageURL(*results[0].PosterPath, posterSize)
}

// PersonProfile resolves a profile image URL for a person by their
// metadata-service ID.
func (r *Resolver) PersonProfile(ctx context.Context, personID int) string {
	if !r.tmdb.IsConfigured() {
		return r.config.ProfilePlaceholder
	}

	details, err := r.tmdb.GetPerson(ctx, personID)
	if err != nil {
		r.logger.Debug().Err(err).Int("person_id", personID).Msg("Profile image lookup failed")
		return r.config.ProfilePlaceholder
	}
	if details.ProfilePath == nil {
		return r.config.ProfilePlaceholder
	}

	return r.tmdb.GetImageURL(*details.ProfilePath, profileSize)
}

// PersonMetadata resolves the profile image URL and death date for a
// person in a single lookup. Deathday is empty for living people and
// on any failure.
func (r *Resolver) PersonMetadata(ctx context.Context, personID int) (profileURL, deathday string) {
	if !r.tmdb.IsConfigured() {
		return r.config.ProfilePlaceholder, ""
	}

	details, err := r.tmdb.GetPerson(ctx, personID)
	if err != nil {
		r.logger.Debug().Err(err).Int("person_id", personID).Msg("Person metadata lookup failed")
		return r.config.ProfilePlaceholder, ""
	}

	profileURL = r.config.ProfilePlaceholder
	if details.ProfilePath != nil {
		profileURL = r.tmdb.GetImageURL(*details.ProfilePath, profileSize)
	}
	return profileURL, details.Deathday
}

// MoviePosters resolves posters for a page of movies in place. The
// batch completes only when every item is resolved, so callers can
// publish results atomically.
func (r *Resolver) MoviePosters(ctx context.Context, movies []api.Movie) {
	r.batch(len(movies), func(i int) {
		movies[i].PosterURL = r.MoviePoster(ctx, movies[i].ID)
	})
}

// FilmographyPosters resolves posters for a person's filmography in place.
func (r *Resolver) FilmographyPosters(ctx context.Context, entries []api.FilmographyEntry) {
	r.batch(len(entries), func(i int) {
		entries[i].PosterURL = r.MoviePoster(ctx, entries[i].ID)
	})
}

// ListMoviePosters resolves posters for a list's members in place.
func (r *Resolver) ListMoviePosters(ctx context.Context, movies []api.ListMovie) {
	r.batch(len(movies), func(i int) {
		movies[i].PosterURL = r.MoviePoster(ctx, movies[i].ID)
	})
}

// RecommendedPosters resolves posters for similar-movie entries in place.
func (r *Resolver) RecommendedPosters(ctx context.Context, movies []api.RecommendedMovie) {
	r.batch(len(movies), func(i int) {
		movies[i].PosterURL = r.MoviePoster(ctx, movies[i].ID)
	})
}

// PredictedPosters resolves posters for personal recommendations in place.
func (r *Resolver) PredictedPosters(ctx context.Context, movies []api.PredictedMovie) {
	r.batch(len(movies), func(i int) {
		movies[i].PosterURL = r.MoviePoster(ctx, movies[i].ID)
	})
}

// PersonProfiles resolves profile images for a cast or crew slice in place.
func (r *Resolver) PersonProfiles(ctx context.Context, people []api.Person) {
	r.batch(len(people), func(i int) {
		people[i].ProfileURL = r.PersonProfile(ctx, people[i].ID)
	})
}

// batch runs fn for each index with bounded concurrency and waits for
// all of them.
func (r *Resolver) batch(n int, fn func(i int)) {
	p := pool.New().WithMaxGoroutines(r.config.Workers)
	for i := 0; i < n; i++ {
		p.Go(func() {
			fn(i)
		})
	}
	p.Wait()
}
