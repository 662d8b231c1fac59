package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchParams are the assembled filter parameters for a catalog search.
// Zero values mean "no constraint"; GenreIDs use AND semantics (a movie
// must match every selected genre).
type SearchParams struct {
	Query      string
	StartYear  int
	EndYear    int
	RuntimeMin int
	RuntimeMax int
	GenreIDs   []int
	Page       int
}

// Values encodes the parameters the way the backend expects: omitted
// when unset, one `genre` parameter per selected id.
func (p SearchParams) Values() url.Values {
	params := url.Values{}
	params.Set("query", p.Query)
	if p.StartYear > 0 {
		params.Set("start_year", strconv.Itoa(p.StartYear))
	}
	if p.EndYear > 0 {
		params.Set("end_year", strconv.Itoa(p.EndYear))
	}
	if p.RuntimeMin > 0 {
		params.Set("runtime_min", strconv.Itoa(p.RuntimeMin))
	}
	if p.RuntimeMax > 0 {
		params.Set("runtime_max", strconv.Itoa(p.RuntimeMax))
	}
	for _, id := range p.GenreIDs {
		params.Add("genre", strconv.Itoa(id))
	}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	return params
}

// GetMovies fetches one page of the default catalog listing.
func (c *Client) GetMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	var result MoviePage
	if err := c.get(ctx, "movies", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMovie fetches the aggregate movie record by id.
func (c *Client) GetMovie(ctx context.Context, movieID int) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("movies/%d", movieID), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Search runs a filtered, paginated catalog query.
func (c *Client) Search(ctx context.Context, params SearchParams) (*MoviePage, error) {
	var result MoviePage
	if err := c.get(ctx, "search", params.Values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecommendations fetches similar movies for a movie.
func (c *Client) GetRecommendations(ctx context.Context, movieID int) ([]RecommendedMovie, error) {
	var movies []RecommendedMovie
	if err := c.get(ctx, fmt.Sprintf("movies/%d/recommendation", movieID), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetGenres fetches all genres.
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := c.get(ctx, "genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
