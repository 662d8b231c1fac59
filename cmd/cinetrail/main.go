package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/config"
	"github.com/cinetrail/cinetrail/internal/logger"
	"github.com/cinetrail/cinetrail/internal/metadata"
	"github.com/cinetrail/cinetrail/internal/metadata/tmdb"
	"github.com/cinetrail/cinetrail/internal/search"
	"github.com/cinetrail/cinetrail/internal/session"
	"github.com/cinetrail/cinetrail/internal/views"
)

func main() {
	// Environment overrides may live in a local .env during development.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to config file")
	query := flag.String("query", "", "Search query")
	page := flag.Int("page", 1, "Result page")
	genres := flag.String("genres", "", "Comma-separated genre ids")
	movieID := flag.Int("movie", 0, "Show a movie's detail view instead of searching")
	personID := flag.Int("person", 0, "Show a person's detail view instead of searching")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	defer log.Close()

	client, err := api.NewClient(cfg.API, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create API client")
	}

	tmdbClient := tmdb.NewClient(cfg.TMDB, log.Logger)
	if !tmdbClient.IsConfigured() {
		log.Warn().Msg("No TMDB API key configured, artwork will use placeholders")
	}
	resolver := metadata.NewResolver(tmdbClient, cfg.Resolver, log.Logger)

	ctx := context.Background()

	sess := session.New(client, log.Logger)
	if err := sess.Init(ctx); err != nil {
		log.Warn().Err(err).Msg("Session init failed, continuing anonymous")
	}

	switch {
	case *movieID > 0:
		showMovie(ctx, client, resolver, sess, log, *movieID)
	case *personID > 0:
		showPerson(ctx, client, resolver, log, *personID)
	default:
		runSearch(client, resolver, cfg, log, *query, *page, parseGenres(*genres))
	}
}

// runSearch drives one settled query through the search engine and
// prints the resolved page.
func runSearch(client *api.Client, resolver *metadata.Resolver, cfg *config.Config, log *logger.Logger, query string, page int, genreIDs []int) {
	done := make(chan search.Update, 1)
	engine := search.New(client, resolver, cfg.Search, log.Logger, func(u search.Update) {
		done <- u
	})
	defer engine.Stop()

	if query != "" {
		engine.SetQuery(query)
	}
	if len(genreIDs) > 0 {
		engine.SetGenres(genreIDs)
	}
	if page > 1 {
		engine.SetPage(page)
	}
	if query == "" && len(genreIDs) == 0 && page <= 1 {
		engine.Refresh()
	}

	select {
	case update := <-done:
		if update.Err != nil {
			log.Fatal().Err(update.Err).Msg("Search failed")
		}
		fmt.Printf("%d movies, page %d of %d\n\n", update.TotalCount, update.Params.Page, update.TotalPages)
		for _, m := range update.Movies {
			fmt.Printf("  %-40s (%d)  %s\n", m.Title, m.ReleaseYear, views.FormatRuntime(m.Runtime))
			fmt.Printf("  %40s poster: %s\n", "", m.PosterURL)
		}
	case <-time.After(30 * time.Second):
		log.Fatal().Msg("Search timed out")
	}
}

func showMovie(ctx context.Context, client *api.Client, resolver *metadata.Resolver, sess *session.Session, log *logger.Logger, movieID int) {
	view := views.NewMovieView(client, resolver, log.Logger)
	view.Load(ctx, movieID)

	switch view.State() {
	case views.StateNotFound:
		log.Fatal().Int("movie_id", movieID).Msg("Movie not found")
	case views.StateFailed:
		log.Fatal().Int("movie_id", movieID).Msg("Movie load failed")
	}

	movie := view.Movie()
	fmt.Printf("%s (%d)  %s\n", movie.Title, movie.ReleaseYear, views.FormatRuntime(movie.Runtime))
	if movie.Tagline != "" {
		fmt.Printf("%q\n", movie.Tagline)
	}
	fmt.Printf("\n%s\n\nposter: %s\n", movie.Overview, movie.PosterURL)
	for _, d := range movie.Directors {
		fmt.Printf("directed by %s\n", d.FullName())
	}

	view.LoadRecommendations(ctx, movieID)
	if view.RecommendationsState() == views.StateReady {
		fmt.Println("\nSimilar movies:")
		for _, r := range view.Recommendations() {
			fmt.Printf("  %s (%d)\n", r.Title, r.ReleaseYear)
		}
	}

	comments := views.NewCommentsSection(client, sess, movieID, log.Logger)
	comments.Load(ctx)
	if comments.State() == views.StateReady {
		fmt.Printf("\n%d comments\n", len(comments.Comments()))
	}
}

func showPerson(ctx context.Context, client *api.Client, resolver *metadata.Resolver, log *logger.Logger, personID int) {
	view := views.NewPersonView(client, resolver, log.Logger)
	view.Load(ctx, personID)

	switch view.State() {
	case views.StateNotFound:
		log.Fatal().Int("person_id", personID).Msg("Person not found")
	case views.StateFailed:
		log.Fatal().Int("person_id", personID).Msg("Person load failed")
	}

	person := view.Person()
	fmt.Printf("%s\n", person.FullName())
	if person.Birthday != "" {
		lifespan := person.Birthday
		if person.Deathday != "" {
			lifespan += " - " + person.Deathday
		}
		fmt.Printf("%s\n", lifespan)
	}
	fmt.Printf("profile: %s\n", person.ProfileURL)
	if len(person.Filmography) > 0 {
		fmt.Println("\nFilmography:")
		for _, f := range person.Filmography {
			fmt.Printf("  %s (%d)\n", f.Title, f.ReleaseYear)
		}
	}
}

func parseGenres(s string) []int {
	if s == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		var id int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &id); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
