// Package search drives the filtered, paginated catalog query flow:
// input settling via per-field-class debouncing, a single in-flight
// request per settled filter combination, and atomic publication of
// fully resolved result pages.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/api"
	"github.com/cinetrail/cinetrail/internal/config"
	"github.com/cinetrail/cinetrail/internal/metadata"
)

// Update is one atomic result publication. Movies arrive with poster
// URLs already resolved; consumers never see a partially resolved page.
// Err is set when the query failed, in which case Movies is nil.
type Update struct {
	Params     api.SearchParams
	Movies     []api.Movie
	TotalCount int
	TotalPages int
	Err        error
}

// Engine owns the search filter state. Input setters return
// immediately; queries fire only after the touched field class has
// settled, and stale responses are discarded by generation.
type Engine struct {
	client   *api.Client
	resolver *metadata.Resolver
	pageSize int
	logger   zerolog.Logger

	onUpdate func(Update)

	queryDebounce *debouncer
	rangeDebounce *debouncer
	pageDebounce  *debouncer

	generation atomic.Uint64

	mu     sync.Mutex
	params api.SearchParams
}

// New creates a search engine. onUpdate is invoked from a background
// goroutine with each settled, fully resolved result page.
func New(client *api.Client, resolver *metadata.Resolver, cfg config.SearchConfig, logger zerolog.Logger, onUpdate func(Update)) *Engine {
	return &Engine{
		client:        client,
		resolver:      resolver,
		pageSize:      cfg.PageSize,
		logger:        logger.With().Str("component", "search").Logger(),
		onUpdate:      onUpdate,
		queryDebounce: newDebouncer(time.Duration(cfg.QueryDebounceMS) * time.Millisecond),
		rangeDebounce: newDebouncer(time.Duration(cfg.RangeDebounceMS) * time.Millisecond),
		pageDebounce:  newDebouncer(time.Duration(cfg.PageDebounceMS) * time.Millisecond),
	}
}

// Params returns a snapshot of the current filter state.
func (e *Engine) Params() api.SearchParams {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.params
	p.GenreIDs = append([]int(nil), e.params.GenreIDs...)
	return p
}

// SetQuery updates the free-text filter. Changing any filter returns
// the pagination to the first page.
func (e *Engine) SetQuery(query string) {
	e.mu.Lock()
	e.params.Query = query
	e.params.Page = 1
	e.mu.Unlock()
	e.queryDebounce.trigger(e.fire)
}

// SetYearRange updates the release-year bounds. Zero means unbounded.
func (e *Engine) SetYearRange(start, end int) {
	e.mu.Lock()
	e.params.StartYear = start
	e.params.EndYear = end
	e.params.Page = 1
	e.mu.Unlock()
	e.rangeDebounce.trigger(e.fire)
}

// SetRuntimeRange updates the runtime bounds in minutes. Zero means
// unbounded.
func (e *Engine) SetRuntimeRange(min, max int) {
	e.mu.Lock()
	e.params.RuntimeMin = min
	e.params.RuntimeMax = max
	e.params.Page = 1
	e.mu.Unlock()
	e.rangeDebounce.trigger(e.fire)
}

// SetGenres replaces the selected genre set. Selected genres combine
// conjunctively.
func (e *Engine) SetGenres(genreIDs []int) {
	e.mu.Lock()
	e.params.GenreIDs = append([]int(nil), genreIDs...)
	e.params.Page = 1
	e.mu.Unlock()
	e.rangeDebounce.trigger(e.fire)
}

// SetPage moves to another page of the current filter combination.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.mu.Lock()
	e.params.Page = page
	e.mu.Unlock()
	e.pageDebounce.trigger(e.fire)
}

// Refresh queries immediately with the current filter state, skipping
// the debounce. Used for the initial page load.
func (e *Engine) Refresh() {
	e.mu.Lock()
	if e.params.Page == 0 {
		e.params.Page = 1
	}
	e.mu.Unlock()
	e.fire()
}

// Stop cancels all pending debounced queries. In-flight requests are
// not interrupted but their results are discarded.
func (e *Engine) Stop() {
	e.queryDebounce.stop()
	e.rangeDebounce.stop()
	e.pageDebounce.stop()
	e.generation.Add(1)
}

// fire snapshots the settled filter state and runs the query on a new
// generation. Older generations still in flight lose the race and are
// dropped at publish time.
func (e *Engine) fire() {
	params := e.Params()
	gen := e.generation.Add(1)
	go e.run(gen, params)
}

func (e *Engine) run(gen uint64, params api.SearchParams) {
	ctx := context.Background()

	page, err := e.client.Search(ctx, params)
	if err != nil {
		if e.stale(gen) {
			return
		}
		e.logger.Warn().Err(err).Str("query", params.Query).Msg("Search failed")
		e.publish(gen, Update{Params: params, Err: err})
		return
	}

	// Poster resolution happens before publication so a page always
	// lands complete. A newer generation can still overtake during
	// resolution; the stale check below drops this one if so.
	e.resolver.MoviePosters(ctx, page.Items)

	totalPages := (page.Count + e.pageSize - 1) / e.pageSize

	e.logger.Debug().
		Str("query", params.Query).
		Int("page", params.Page).
		Int("count", page.Count).
		Int("total_pages", totalPages).
		Msg("Search completed")

	e.publish(gen, Update{
		Params:     params,
		Movies:     page.Items,
		TotalCount: page.Count,
		TotalPages: totalPages,
	})
}

func (e *Engine) stale(gen uint64) bool {
	return gen != e.generation.Load()
}

func (e *Engine) publish(gen uint64, update Update) {
	if e.stale(gen) {
		e.logger.Debug().Uint64("generation", gen).Msg("Dropping stale search response")
		return
	}
	if e.onUpdate != nil {
		e.onUpdate(update)
	}
}
