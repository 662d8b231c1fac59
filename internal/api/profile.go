package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetProfile fetches a user's public profile.
func (c *Client) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, fmt.Sprintf("profile/%d", userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile submits profile edits. The server validates the password
// triple and returns `{error}` on any mismatch.
func (c *Client) UpdateProfile(ctx context.Context, userID int, update ProfileUpdate) (string, error) {
	return c.postStatus(ctx, http.MethodPut, fmt.Sprintf("profile/%d", userID), update)
}

// GetUserRecommendations fetches personal movie recommendations with
// estimated ratings. Users without ratings get a 404 with an error body.
func (c *Client) GetUserRecommendations(ctx context.Context, userID int) ([]PredictedMovie, error) {
	var movies []PredictedMovie
	if err := c.get(ctx, fmt.Sprintf("profile/%d/recommendation", userID), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetUserLists fetches the movie lists owned by a user.
func (c *Client) GetUserLists(ctx context.Context, userID int) ([]MovieListSummary, error) {
	var lists []MovieListSummary
	if err := c.get(ctx, fmt.Sprintf("profile/%d/lists", userID), nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList fetches a full movie list with its owner and members.
func (c *Client) GetList(ctx context.Context, listID int) (*MovieList, error) {
	var list MovieList
	if err := c.get(ctx, fmt.Sprintf("lists/%d", listID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateList creates a new movie list owned by userID.
func (c *Client) CreateList(ctx context.Context, userID int, name, description string) (string, error) {
	body := map[string]interface{}{
		"name":        name,
		"description": description,
		"user":        userID,
	}
	return c.postStatus(ctx, http.MethodPost, fmt.Sprintf("profile/%d/lists/", userID), body)
}

// UpdateList renames a list and/or replaces its description.
func (c *Client) UpdateList(ctx context.Context, userID, listID int, name, description string) (string, error) {
	body := map[string]string{"name": name, "description": description}
	return c.postStatus(ctx, http.MethodPut, fmt.Sprintf("profile/%d/lists/%d/update", userID, listID), body)
}

// DeleteList removes a list.
func (c *Client) DeleteList(ctx context.Context, userID, listID int) (string, error) {
	return c.postStatus(ctx, http.MethodDelete, fmt.Sprintf("profile/%d/lists/%d/delete", userID, listID), nil)
}

// AddMovieToList appends a movie to a list. The server rejects
// duplicates with an error body.
func (c *Client) AddMovieToList(ctx context.Context, userID, listID, movieID int) (string, error) {
	body := map[string]int{"list_id": listID, "movie_id": movieID}
	return c.postStatus(ctx, http.MethodPost,
		fmt.Sprintf("profile/%d/lists/%d/add/%d", userID, listID, movieID), body)
}

// RemoveMovieFromList removes a movie from a list.
func (c *Client) RemoveMovieFromList(ctx context.Context, listID, movieID int) (string, error) {
	return c.postStatus(ctx, http.MethodDelete, fmt.Sprintf("lists/%d/remove/%d", listID, movieID), nil)
}
