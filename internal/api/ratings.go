package api

import (
	"context"
	"fmt"
	"net/http"
)

// validRating reports whether value is inside the allowed [0,5] range.
func validRating(value int) bool {
	return value >= 0 && value <= 5
}

// GetRating fetches the requesting user's rating for a movie. A nil
// result with nil error means the user has not rated the movie yet.
func (c *Client) GetRating(ctx context.Context, movieID, userID int) (*Rating, error) {
	var rating Rating
	if err := c.get(ctx, fmt.Sprintf("movies/%d/ratings/%d", movieID, userID), nil, &rating); err != nil {
		return nil, err
	}
	if rating.ID == 0 {
		return nil, nil
	}
	return &rating, nil
}

// AddRating submits a first rating for a movie. Out-of-range values are
// rejected before transmission.
func (c *Client) AddRating(ctx context.Context, movieID, userID, value int) (string, error) {
	if !validRating(value) {
		return "", ErrRatingOutOfRange
	}
	body := map[string]int{"user_id": userID, "rating": value}
	return c.postStatus(ctx, http.MethodPost, fmt.Sprintf("movies/%d/ratings", movieID), body)
}

// UpdateRating replaces the value of an existing rating.
func (c *Client) UpdateRating(ctx context.Context, movieID, ratingID, value int) (string, error) {
	if !validRating(value) {
		return "", ErrRatingOutOfRange
	}
	body := map[string]int{"rating": value}
	return c.postStatus(ctx, http.MethodPut, fmt.Sprintf("movies/%d/ratings/%d/update", movieID, ratingID), body)
}

// DeleteRating removes a rating.
func (c *Client) DeleteRating(ctx context.Context, movieID, ratingID int) (string, error) {
	return c.postStatus(ctx, http.MethodDelete, fmt.Sprintf("movies/%d/ratings/%d/delete", movieID, ratingID), nil)
}
