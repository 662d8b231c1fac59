package views

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/metadata"
)

// PersonView is the person detail screen. The death date is not part
// of the primary record and gets supplemented from the metadata
// service together with the profile image.
type PersonView struct {
	client   *api.Client
	resolver *metadata.Resolver
	logger   zerolog.Logger

	mu     sync.RWMutex
	state  State
	person *api.PersonDetails
}

// NewPersonView creates a person detail view.
func NewPersonView(client *api.Client, resolver *metadata.Resolver, logger zerolog.Logger) *PersonView {
	return &PersonView{
		client:   client,
		resolver: resolver,
		logger:   logger.With().Str("component", "person_view").Logger(),
	}
}

// Load fetches the person and enriches the record with the profile
// image, death date, and filmography posters.
func (v *PersonView) Load(ctx context.Context, personID int) {
	v.mu.Lock()
	v.state = StateLoading
	v.mu.Unlock()

	person, err := v.client.GetPerson(ctx, personID)
	if err != nil {
		v.mu.Lock()
		if errors.Is(err, api.ErrNotFound) {
			v.state = StateNotFound
		} else {
			v.logger.Warn().Err(err).Int("person_id", personID).Msg("Person load failed")
			v.state = StateFailed
		}
		v.mu.Unlock()
		return
	}

	profileURL, deathday := v.resolver.PersonMetadata(ctx, person.ID)
	person.ProfileURL = profileURL
	if person.Deathday == "" {
		person.Deathday = deathday
	}
	v.resolver.FilmographyPosters(ctx, person.Filmography)

	v.mu.Lock()
	v.person = person
	v.state = StateReady
	v.mu.Unlock()
}

// State returns the fetch state.
func (v *PersonView) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Person returns the loaded record, or nil outside StateReady.
func (v *PersonView) Person() *api.PersonDetails {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.state != StateReady {
		return nil
	}
	p := *v.person
	return &p
}
