package views

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
)

func TestCommentsLoad(t *testing.T) {
	d := newDeps(t)
	d.handleJSON("GET /movies/550/comments", []api.Comment{
		{ID: 1, UserID: 7, Username: "alice", Text: "great", CreatedAt: "2026-01-01 10:00:00", UpdatedAt: "2026-01-01 10:00:00"},
		{ID: 2, UserID: 8, Username: "bob", Text: "changed my mind", CreatedAt: "2026-01-02 10:00:00", UpdatedAt: "2026-01-03 09:00:00"},
	})

	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())
	s.Load(context.Background())

	if s.State() != StateReady {
		t.Fatalf("expected StateReady, got %s", s.State())
	}
	comments := s.Comments()
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Edited() {
		t.Error("untouched comment marked edited")
	}
	if !comments[1].Edited() {
		t.Error("updated comment not marked edited")
	}
}

func TestCommentsAddRequiresSignIn(t *testing.T) {
	d := newDeps(t)
	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())

	err := s.Add(context.Background(), "anonymous hot take")
	if !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestCommentsAddValidatesLength(t *testing.T) {
	d := newDeps(t)
	d.signIn(t, 7, "alice")
	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())

	if err := s.Add(context.Background(), "x"); !errors.Is(err, ErrCommentLength) {
		t.Errorf("expected ErrCommentLength for short text, got %v", err)
	}
	if err := s.Add(context.Background(), strings.Repeat("y", 1001)); !errors.Is(err, ErrCommentLength) {
		t.Errorf("expected ErrCommentLength for long text, got %v", err)
	}
}

func TestCommentsAddReloadsThread(t *testing.T) {
	d := newDeps(t)
	d.signIn(t, 7, "alice")

	posted := false
	d.mux.HandleFunc("POST /movies/550/comments", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MovieID int    `json:"movie_id"`
			UserID  int    `json:"user_id"`
			Comment string `json:"comment"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.UserID != 7 || body.Comment != "brilliant" {
			t.Errorf("unexpected payload: %+v", body)
		}
		posted = true
		json.NewEncoder(w).Encode(map[string]string{"success": "Comment added"})
	})
	d.mux.HandleFunc("GET /movies/550/comments", func(w http.ResponseWriter, r *http.Request) {
		comments := []api.Comment{}
		if posted {
			comments = append(comments, api.Comment{ID: 1, UserID: 7, Text: "brilliant"})
		}
		json.NewEncoder(w).Encode(comments)
	})

	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())
	s.Load(context.Background())
	if len(s.Comments()) != 0 {
		t.Fatal("expected empty thread before posting")
	}

	if err := s.Add(context.Background(), "brilliant"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(s.Comments()) != 1 {
		t.Error("thread not reloaded after posting")
	}
	status := s.Status()
	if status == nil || status.IsError || status.Text != "Comment added" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestCommentsExclusiveEditMode(t *testing.T) {
	d := newDeps(t)
	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())

	s.StartEdit(1)
	s.StartEdit(2)
	if s.EditingID() != 2 {
		t.Errorf("expected edit mode on comment 2, got %d", s.EditingID())
	}
	s.CancelEdit()
	if s.EditingID() != 0 {
		t.Error("expected no comment in edit mode after cancel")
	}
}

func TestCommentsSaveEdit(t *testing.T) {
	d := newDeps(t)
	d.signIn(t, 7, "alice")
	d.handleSuccess("PUT /movies/550/comments/1", "Comment updated")
	d.handleJSON("GET /movies/550/comments", []api.Comment{
		{ID: 1, UserID: 7, Text: "revised", CreatedAt: "a", UpdatedAt: "b"},
	})

	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())
	s.StartEdit(1)
	if err := s.SaveEdit(context.Background(), "revised"); err != nil {
		t.Fatalf("SaveEdit failed: %v", err)
	}
	if s.EditingID() != 0 {
		t.Error("edit mode not cleared after save")
	}
	if got := s.Comments()[0].Text; got != "revised" {
		t.Errorf("thread not reloaded, got %q", got)
	}
}

func TestCommentsDeleteSurfacesServerError(t *testing.T) {
	d := newDeps(t)
	d.signIn(t, 7, "alice")
	d.handleError("DELETE /movies/550/comments/1", 403, "You cannot delete this comment")

	s := NewCommentsSection(d.client, d.sess, 550, zerolog.Nop())
	if err := s.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
	status := s.Status()
	if status == nil || !status.IsError || status.Text != "You cannot delete this comment" {
		t.Errorf("unexpected status: %+v", status)
	}
}
