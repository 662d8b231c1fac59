package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/config"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(config.APIConfig{
		BaseURL:       serverURL + "/",
		StaticBaseURL: serverURL,
		Timeout:       5,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestCSRFTokenAttachedToWrites(t *testing.T) {
	var gotToken string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /set-cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-abc", Path: "/"})
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-CSRFToken")
		w.Write([]byte(`{"id": 7, "username": "alice"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL)
	if err := c.FetchCSRFToken(context.Background()); err != nil {
		t.Fatalf("FetchCSRFToken failed: %v", err)
	}
	if _, err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotToken != "csrf-abc" {
		t.Errorf("expected CSRF header csrf-abc, got %q", gotToken)
	}
}

func TestHasSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "tok", Path: "/"})
		w.Write([]byte(`{"id": 7, "username": "alice"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := newTestClient(t, server.URL)
	if c.HasSession() {
		t.Error("fresh client should have no session")
	}
	if _, err := c.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !c.HasSession() {
		t.Error("expected session after login")
	}
}

func TestErrorBodyDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "Movie not found"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.GetMovie(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	statusErr, ok := IsHTTPError(err)
	if !ok {
		t.Fatal("expected a status error")
	}
	if statusErr.Code != http.StatusNotFound || statusErr.Message != "Movie not found" {
		t.Errorf("unexpected status error: %+v", statusErr)
	}
}

func TestUnauthorizedMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Not authenticated"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTransportErrorIsNotStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.GetMovie(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	if _, ok := IsHTTPError(err); ok {
		t.Error("transport failure must not look like an HTTP status error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("transport failure must not match ErrNotFound")
	}
}

func TestRequestIDHeader(t *testing.T) {
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	if _, err := c.GetGenres(context.Background()); err != nil {
		t.Fatalf("GetGenres failed: %v", err)
	}
	if requestID == "" {
		t.Error("expected X-Request-ID header on every request")
	}
}

func TestStaticURL(t *testing.T) {
	c := newTestClient(t, "http://backend.example.com")

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"/media/pic.png", "http://backend.example.com/media/pic.png"},
		{"media/pic.png", "http://backend.example.com/media/pic.png"},
		{"https://cdn.example.com/pic.png", "https://cdn.example.com/pic.png"},
	}
	for _, tc := range cases {
		if got := c.StaticURL(tc.in); got != tc.want {
			t.Errorf("StaticURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPostStatusReturnsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/comments") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"success": "Comment added"}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	msg, err := c.AddComment(context.Background(), 550, 7, "great movie")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if msg != "Comment added" {
		t.Errorf("expected success message, got %q", msg)
	}
}
