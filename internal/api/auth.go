package api

import (
	"context"
	"net/http"
)

// FetchCSRFToken bootstraps the anti-forgery cookie. Must be called
// before the first state-changing request of an anonymous session.
func (c *Client) FetchCSRFToken(ctx context.Context) error {
	return c.get(ctx, "set-cookie", nil, nil)
}

// EnsureCSRFToken bootstraps the anti-forgery cookie unless the jar
// already holds one.
func (c *Client) EnsureCSRFToken(ctx context.Context) error {
	if c.csrfToken() != "" {
		return nil
	}
	return c.FetchCSRFToken(ctx)
}

// Login authenticates with username and password. The session cookie is
// captured by the client's jar; the authenticated user is returned.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}

	var user User
	if err := c.send(ctx, http.MethodPost, "login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "logout", nil, nil)
}

// Register creates a new account and returns it.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	var user User
	if err := c.send(ctx, http.MethodPost, "register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the user bound to the current session cookie.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
