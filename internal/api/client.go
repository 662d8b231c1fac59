// Package api implements the client for the primary catalog backend:
// JSON over HTTP with session-cookie and CSRF-token authentication.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cinetrail/cinetrail/internal/config"
)

const (
	csrfCookieName    = "csrftoken"
	sessionCookieName = "sessionid"
	csrfHeader        = "X-CSRFToken"
)

// Client is the primary backend API client. It owns the cookie jar that
// carries the session and CSRF cookies; credentials are attached to every
// state-changing request and never written by the client itself.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	staticBase string
	logger     zerolog.Logger
}

// NewClient creates a backend client from configuration.
func NewClient(cfg config.APIConfig, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
			Jar:     jar,
		},
		baseURL:    base,
		staticBase: strings.TrimSuffix(cfg.StaticBaseURL, "/"),
		logger:     logger.With().Str("component", "api").Logger(),
	}, nil
}

// HasSession reports whether a session cookie is present for the backend.
func (c *Client) HasSession() bool {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return true
		}
	}
	return false
}

// StaticURL resolves a backend-relative static asset path (e.g. an
// uploaded profile picture) against the static asset base URL.
func (c *Client) StaticURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.staticBase + "/" + strings.TrimPrefix(path, "/")
}

// csrfToken reads the anti-forgery token from the cookie jar.
func (c *Client) csrfToken() string {
	for _, cookie := range c.httpClient.Jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// endpoint resolves a backend-relative path against the base URL.
func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + strings.TrimPrefix(path, "/")
}

// get performs a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	reqURL := c.endpoint(path)
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// send performs a state-changing request with a JSON body, attaching the
// CSRF token from the cookie jar, and decodes the response into result.
func (c *Client) send(ctx context.Context, method, path string, body, result interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(csrfHeader, c.csrfToken())

	return c.do(req, result)
}

// do executes a request. Non-2xx responses decode the `{error}` body into
// a *StatusError; transport failures are wrapped and returned as-is so
// the two failure kinds stay distinguishable. Neither is allowed to
// escape undecorated: both are logged here, at the lowest call site.
func (c *Client) do(req *http.Request, result interface{}) error {
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.Path).
			Str("requestID", requestID).
			Msg("HTTP request failed")
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)

		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("method", req.Method).
			Str("url", req.URL.Path).
			Str("message", errBody.Error).
			Str("requestID", requestID).
			Msg("API error response")

		return &StatusError{Code: resp.StatusCode, Message: errBody.Error}
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.Path).
		Str("requestID", requestID).
		Msg("Request completed")

	return nil
}

// postStatus issues a write and returns the server's `{success}` message.
func (c *Client) postStatus(ctx context.Context, method, path string, body interface{}) (string, error) {
	var status struct {
		Success string `json:"success"`
	}
	if err := c.send(ctx, method, path, body, &status); err != nil {
		return "", err
	}
	return status.Success, nil
}
