package views

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/metadata"
	"github.com/cinetrail/cinetrail/internal/session"
)

// ProfileView is the profile screen: the profile record, its movie
// lists, and personal recommendations. Each section loads and fails
// independently. Mutations are owner-gated.
type ProfileView struct {
	client   *api.Client
	resolver *metadata.Resolver
	session  *session.Session
	logger   zerolog.Logger

	mu      sync.RWMutex
	userID  int
	state   State
	profile *api.Profile
	status  *StatusMessage

	lists         []api.MovieListSummary
	listsState    State
	editingListID int

	recommendations []api.PredictedMovie
	recState        State
	recError        string
}

// NewProfileView creates a profile view.
func NewProfileView(client *api.Client, resolver *metadata.Resolver, sess *session.Session, logger zerolog.Logger) *ProfileView {
	return &ProfileView{
		client:   client,
		resolver: resolver,
		session:  sess,
		logger:   logger.With().Str("component", "profile_view").Logger(),
	}
}

// Load fetches the profile record. The picture path is resolved
// against the static asset base.
func (v *ProfileView) Load(ctx context.Context, userID int) {
	v.mu.Lock()
	v.userID = userID
	v.state = StateLoading
	v.mu.Unlock()

	profile, err := v.client.GetProfile(ctx, userID)
	if err != nil {
		v.mu.Lock()
		if errors.Is(err, api.ErrNotFound) {
			v.state = StateNotFound
		} else {
			v.logger.Warn().Err(err).Int("user_id", userID).Msg("Profile load failed")
			v.state = StateFailed
		}
		v.mu.Unlock()
		return
	}

	profile.ProfilePicture = v.client.StaticURL(profile.ProfilePicture)

	v.mu.Lock()
	v.profile = profile
	v.state = StateReady
	v.mu.Unlock()
}

// IsOwner reports whether the signed-in user owns this profile.
func (v *ProfileView) IsOwner() bool {
	user := v.session.Current()
	if user == nil {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return user.ID == v.userID
}

// SubmitEdit sends profile edits. On success the local record is
// patched with the submitted fields; on failure it is left untouched
// and the server's message is shown.
func (v *ProfileView) SubmitEdit(ctx context.Context, update api.ProfileUpdate) error {
	if !v.IsOwner() {
		return ErrNotOwner
	}

	v.mu.RLock()
	userID := v.userID
	v.mu.RUnlock()

	msg, err := v.client.UpdateProfile(ctx, userID, update)
	if err != nil {
		v.setStatus(errorText(err), true)
		return err
	}

	v.mu.Lock()
	if v.profile != nil {
		v.profile.FirstName = update.FirstName
		v.profile.LastName = update.LastName
		v.profile.Bio = update.Bio
	}
	v.status = &StatusMessage{Text: msg}
	v.mu.Unlock()
	return nil
}

// LoadLists fetches the profile's movie lists.
func (v *ProfileView) LoadLists(ctx context.Context) {
	v.mu.Lock()
	userID := v.userID
	v.listsState = StateLoading
	v.mu.Unlock()

	lists, err := v.client.GetUserLists(ctx, userID)
	if err != nil {
		v.logger.Warn().Err(err).Int("user_id", userID).Msg("Lists load failed")
		v.mu.Lock()
		v.listsState = StateFailed
		v.mu.Unlock()
		return
	}

	v.mu.Lock()
	v.lists = lists
	v.listsState = StateReady
	v.mu.Unlock()
}

// CreateList creates a list and reloads the index.
func (v *ProfileView) CreateList(ctx context.Context, name, description string) error {
	if !v.IsOwner() {
		return ErrNotOwner
	}

	v.mu.RLock()
	userID := v.userID
	v.mu.RUnlock()

	msg, err := v.client.CreateList(ctx, userID, name, description)
	if err != nil {
		v.setStatus(errorText(err), true)
		return err
	}

	v.setStatus(msg, false)
	v.LoadLists(ctx)
	return nil
}

// StartListEdit puts one list into edit mode, replacing any other.
func (v *ProfileView) StartListEdit(listID int) {
	v.mu.Lock()
	v.editingListID = listID
	v.mu.Unlock()
}

// CancelListEdit leaves edit mode without saving.
func (v *ProfileView) CancelListEdit() {
	v.mu.Lock()
	v.editingListID = 0
	v.mu.Unlock()
}

// EditingListID returns the id of the list in edit mode, 0 for none.
func (v *ProfileView) EditingListID() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.editingListID
}

// SaveListEdit submits new metadata for the list in edit mode and
// reloads the index.
func (v *ProfileView) SaveListEdit(ctx context.Context, name, description string) error {
	if !v.IsOwner() {
		return ErrNotOwner
	}

	v.mu.RLock()
	userID := v.userID
	listID := v.editingListID
	v.mu.RUnlock()
	if listID == 0 {
		return nil
	}

	msg, err := v.client.UpdateList(ctx, userID, listID, name, description)
	if err != nil {
		v.setStatus(errorText(err), true)
		return err
	}

	v.CancelListEdit()
	v.setStatus(msg, false)
	v.LoadLists(ctx)
	return nil
}

// DeleteList removes a list and reloads the index.
func (v *ProfileView) DeleteList(ctx context.Context, listID int) error {
	if !v.IsOwner() {
		return ErrNotOwner
	}

	v.mu.RLock()
	userID := v.userID
	v.mu.RUnlock()

	msg, err := v.client.DeleteList(ctx, userID, listID)
	if err != nil {
		v.setStatus(errorText(err), true)
		return err
	}

	v.setStatus(msg, false)
	v.LoadLists(ctx)
	return nil
}

// LoadRecommendations fetches personal recommendations with their
// posters. Users without rating history get a server message instead
// of results.
func (v *ProfileView) LoadRecommendations(ctx context.Context) {
	v.mu.Lock()
	userID := v.userID
	v.recState = StateLoading
	v.recError = ""
	v.mu.Unlock()

	recs, err := v.client.GetUserRecommendations(ctx, userID)
	if err != nil {
		v.mu.Lock()
		v.recState = StateFailed
		v.recError = errorText(err)
		v.recommendations = nil
		v.mu.Unlock()
		return
	}

	v.resolver.PredictedPosters(ctx, recs)

	v.mu.Lock()
	v.recommendations = recs
	v.recState = StateReady
	v.mu.Unlock()
}

// State returns the primary fetch state.
func (v *ProfileView) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Profile returns the loaded record, or nil outside StateReady.
func (v *ProfileView) Profile() *api.Profile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state != StateReady {
		return nil
	}
	p := *v.profile
	return &p
}

// Lists returns the loaded list index.
func (v *ProfileView) Lists() []api.MovieListSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]api.MovieListSummary(nil), v.lists...)
}

// ListsState returns the list index fetch state.
func (v *ProfileView) ListsState() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.listsState
}

// Recommendations returns the loaded personal recommendations.
func (v *ProfileView) Recommendations() []api.PredictedMovie {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]api.PredictedMovie(nil), v.recommendations...)
}

// RecommendationsState returns the recommendations fetch state.
func (v *ProfileView) RecommendationsState() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.recState
}

// RecommendationsError returns the banner text for a failed
// recommendations fetch.
func (v *ProfileView) RecommendationsError() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.recError
}

// Status returns the last mutation banner, or nil.
func (v *ProfileView) Status() *StatusMessage {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.status == nil {
		return nil
	}
	m := *v.status
	return &m
}

func (v *ProfileView) setStatus(text string, isError bool) {
	v.mu.Lock()
	v.status = &StatusMessage{Text: text, IsError: isError}
	v.mu.Unlock()
}
