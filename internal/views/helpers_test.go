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
	"github.com/cinetrail/cinetrail/internal/session"
)

const (
	testPoster  = "/assets/movie_poster_placeholder.png"
	testProfile = "/assets/profile_pic_placeholder.png"
)

// deps wires a view test against a fake backend. The metadata service
// is left unconfigured so artwork always resolves to placeholders.
type deps struct {
	mux      *http.ServeMux
	server   *httptest.Server
	client   *api.Client
	resolver *metadata.Resolver
	sess     *session.Session
	user     api.User
}

func newDeps(t *testing.T) *deps {
	t.Helper()

	d := &deps{mux: http.NewServeMux()}
	d.server = httptest.NewServer(d.mux)
	t.Cleanup(d.server.Close)

	client, err := api.NewClient(config.APIConfig{
		BaseURL:       d.server.URL + "/",
		StaticBaseURL: d.server.URL,
		Timeout:       5,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	d.client = client

	d.resolver = metadata.NewResolver(
		tmdb.NewClient(config.TMDBConfig{}, zerolog.Nop()),
		config.ResolverConfig{Workers: 2, PosterPlaceholder: testPoster, ProfilePlaceholder: testProfile},
		zerolog.Nop(),
	)

	d.sess = session.New(client, zerolog.Nop())

	d.mux.HandleFunc("GET /set-cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf", Path: "/"})
		w.Write([]byte(`{}`))
	})
	d.mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "tok", Path: "/"})
		json.NewEncoder(w).Encode(d.user)
	})

	return d
}

// signIn authenticates the session as the given user.
func (d *deps) signIn(t *testing.T, id int, username string) {
	t.Helper()
	d.user = api.User{ID: id, Username: username}
	if _, err := d.sess.Login(context.Background(), username, "secret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
}

// handleJSON registers a handler that writes v as the response body.
func (d *deps) handleJSON(pattern string, v interface{}) {
	d.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(v)
	})
}

// handleError registers a handler that fails with the given status and
// error message.
func (d *deps) handleError(pattern string, status int, message string) {
	d.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	})
}

// handleSuccess registers a handler that succeeds with the given status
// message.
func (d *deps) handleSuccess(pattern, message string) {
	d.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"success": message})
	})
}
