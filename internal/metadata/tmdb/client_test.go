package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.TMDBConfig{
		BaseURL:      serverURL,
		ImageBaseURL: "https://image.example.com/t/p",
		APIKey:       "test-key",
		Timeout:      5,
	}, zerolog.Nop())
}

func TestIsConfigured(t *testing.T) {
	c := NewClient(config.TMDBConfig{}, zerolog.Nop())
	if c.IsConfigured() {
		t.Error("expected unconfigured client without API key")
	}

	c = NewClient(config.TMDBConfig{APIKey: "key"}, zerolog.Nop())
	if !c.IsConfigured() {
		t.Error("expected configured client with API key")
	}
}

func TestGetPerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person/287" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api_key parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 287,
			"name": "Brad Pitt",
			"birthday": "1963-12-18",
			"deathday": null,
			"profile_path": "/abc.jpg"
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	details, err := c.GetPerson(context.Background(), 287)
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if details.Name != "Brad Pitt" {
		t.Errorf("expected name Brad Pitt, got %s", details.Name)
	}
	if details.ProfilePath == nil || *details.ProfilePath != "/abc.jpg" {
		t.Error("expected profile path /abc.jpg")
	}
	if details.Deathday != "" {
		t.Errorf("expected empty deathday, got %s", details.Deathday)
	}
}

func TestGetPersonNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code": 34, "status_message": "The resource you requested could not be found."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.GetPerson(context.Background(), 99999999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/550" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("missing api_key parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"release_date": "1999-10-15",
			"poster_path": "/fc.jpg"
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	details, err := c.GetMovie(context.Background(), 550)
	if err != nil {
		t.Fatalf("GetMovie failed: %v", err)
	}
	if details.Title != "Fight Club" {
		t.Errorf("expected title Fight Club, got %s", details.Title)
	}
	if details.PosterPath == nil || *details.PosterPath != "/fc.jpg" {
		t.Error("expected poster path /fc.jpg")
	}
}

func TestGetMovieNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code": 34, "status_message": "The resource you requested could not be found."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.GetMovie(context.Background(), 99999999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPersonNoAPIKey(t *testing.T) {
	c := NewClient(config.TMDBConfig{BaseURL: "http://example.com"}, zerolog.Nop())
	_, err := c.GetPerson(context.Background(), 287)
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}
}

func TestSearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Fight Club" {
			t.Errorf("unexpected query: %s", q.Get("query"))
		}
		if q.Get("year") != "1999" {
			t.Errorf("unexpected year: %s", q.Get("year"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 1,
			"total_results": 1,
			"total_pages": 1,
			"results": [{"id": 550, "title": "Fight Club", "poster_path": "/fc.jpg"}]
		}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	results, err := c.SearchMovies(context.Background(), "Fight Club", 1999)
	if err != nil {
		t.Fatalf("SearchMovies failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != 550 {
		t.Errorf("expected ID 550, got %d", results[0].ID)
	}
}

func TestSearchMoviesOmitsZeroYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("year") {
			t.Error("year parameter should be omitted when zero")
		}
		w.Write([]byte(`{"page": 1, "results": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.SearchMovies(context.Background(), "Fight Club", 0); err != nil {
		t.Fatalf("SearchMovies failed: %v", err)
	}
}

func TestRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"status_code": 25, "status_message": "Your request count is over the allowed limit."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchMovies(context.Background(), "anything", 0)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}
}

func TestGetImageURL(t *testing.T) {
	c := newTestClient("http://example.com")

	url := c.GetImageURL("/abc.jpg", "w342")
	want := "https://image.example.com/t/p/w342/abc.jpg"
	if url != want {
		t.Errorf("expected %s, got %s", want, url)
	}

	if c.GetImageURL("", "w342") != "" {
		t.Error("expected empty URL for empty path")
	}
}
