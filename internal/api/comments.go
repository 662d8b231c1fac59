package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetComments fetches all comments for a movie, newest first.
func (c *Client) GetComments(ctx context.Context, movieID int) ([]Comment, error) {
	var comments []Comment
	if err := c.get(ctx, fmt.Sprintf("movies/%d/comments", movieID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a new comment and returns the server's status message.
func (c *Client) AddComment(ctx context.Context, movieID, userID int, text string) (string, error) {
	body := map[string]interface{}{
		"movie_id": movieID,
		"user_id":  userID,
		"comment":  text,
	}
	return c.postStatus(ctx, http.MethodPost, fmt.Sprintf("movies/%d/comments", movieID), body)
}

// EditComment replaces a comment's text.
func (c *Client) EditComment(ctx context.Context, movieID, commentID int, text string) (string, error) {
	body := map[string]string{"comment": text}
	return c.postStatus(ctx, http.MethodPut, fmt.Sprintf("movies/%d/comments/%d", movieID, commentID), body)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, movieID, commentID int) (string, error) {
	return c.postStatus(ctx, http.MethodDelete, fmt.Sprintf("movies/%d/comments/%d", movieID, commentID), nil)
}
