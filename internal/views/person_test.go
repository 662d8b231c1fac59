package views

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/config"
	"github.com/cinetrail/cinetrail/internal/metadata"
	"github.com/cinetrail/cinetrail/internal/metadata/tmdb"
)

func TestPersonViewLoad(t *testing.T) {
	d := newDeps(t)
	d.handleJSON("GET /people/287", api.PersonDetails{
		ID:        287,
		FirstName: "Brad",
		LastName:  "Pitt",
		Birthday:  "1963-12-18",
		Filmography: []api.FilmographyEntry{
			{ID: 550, Title: "Fight Club", ReleaseYear: 1999},
		},
	})

	v := NewPersonView(d.client, d.resolver, zerolog.Nop())
	v.Load(context.Background(), 287)

	if v.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", v.State())
	}
	person := v.Person()
	if person.FullName() != "Brad Pitt" {
		t.Errorf("unexpected name: %s", person.FullName())
	}
	if person.ProfileURL != testProfile {
		t.Errorf("expected placeholder profile image, got %s", person.ProfileURL)
	}
	if person.Filmography[0].PosterURL != testPoster {
		t.Errorf("filmography entry missing poster: %s", person.Filmography[0].PosterURL)
	}
}

func TestPersonViewDeathdaySupplemented(t *testing.T) {
	d := newDeps(t)
	d.handleJSON("GET /people/3084", api.PersonDetails{
		ID:        3084,
		FirstName: "Marlon",
		LastName:  "Brando",
	})

	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           3084,
			"name":         "Marlon Brando",
			"deathday":     "2004-07-01",
			"profile_path": "/mb.jpg",
		})
	}))
	defer tmdbServer.Close()

	resolver := metadata.NewResolver(
		tmdb.NewClient(config.TMDBConfig{
			BaseURL:      tmdbServer.URL,
			ImageBaseURL: "https://img.example.com/t/p",
			APIKey:       "key",
			Timeout:      5,
		}, zerolog.Nop()),
		config.ResolverConfig{Workers: 2, PosterPlaceholder: testPoster, ProfilePlaceholder: testProfile},
		zerolog.Nop(),
	)

	v := NewPersonView(d.client, resolver, zerolog.Nop())
	v.Load(context.Background(), 3084)

	person := v.Person()
	if person == nil {
		t.Fatal("expected loaded person")
	}
	if person.Deathday != "2004-07-01" {
		t.Errorf("death date not supplemented, got %q", person.Deathday)
	}
	if person.ProfileURL != "https://img.example.com/t/p/w342/mb.jpg" {
		t.Errorf("unexpected profile image: %s", person.ProfileURL)
	}
}

func TestPersonViewNotFound(t *testing.T) {
	d := newDeps(t)
	d.handleError("GET /people/999", 404, "Person not found")

	v := NewPersonView(d.client, d.resolver, zerolog.Nop())
	v.Load(context.Background(), 999)

	if v.State() != StateNotFound {
		t.Errorf("expected StateNotFound, got %s", v.State())
	}
}
