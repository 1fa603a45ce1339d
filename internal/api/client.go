// Package api is the single chokepoint for all backend calls.
//
// It resolves the API origin once at construction, carries the session cookie
// on every request via a cookie jar, and maps every response onto a uniform
// success/error contract: 2xx bodies are returned as JSON for typed decoding,
// everything else becomes a *RequestError with the server-supplied message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RequestError is a non-success HTTP response. Message is the server's
// "error" field when present, or a generic fallback.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Client talks to the sentiment backend. All state the server needs between
// calls lives in the cookie jar; the client itself holds none.
//
// No retries, no timeouts, no caching: each call is a single best-effort
// attempt, and retry is always a manual repeat of the user action.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a Client for the given API origin (e.g.
// "http://localhost:5000/api", no trailing slash).
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

// BaseURL returns the resolved API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call performs one request against the backend. body, when non-nil, is
// marshalled to JSON. The raw response body is returned for the typed
// endpoint wrappers to decode; an unparseable success body degrades to an
// empty JSON object rather than failing the call.
func (c *Client) Call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request aborted: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Anything unparseable is treated as an empty object; the status code
	// decides success, not the body shape.
	if !json.Valid(data) {
		data = []byte("{}")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{
			Status:  resp.StatusCode,
			Message: errorMessage(data, resp.StatusCode),
		}
	}

	return data, nil
}

// get is a convenience wrapper that decodes a GET response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.Call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(data, path, out)
}

// post is a convenience wrapper that decodes a POST response into out.
// out may be nil when the caller only cares about success.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := c.Call(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, path, out)
}

// decode fails fast on shape mismatches so callers never work with a
// half-populated result.
func decode(data json.RawMessage, path string, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unexpected response shape from %s: %w", path, err)
	}
	return nil
}

// errorMessage extracts the server's error string, or builds the generic one.
func errorMessage(data json.RawMessage, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("Request failed (%d)", status)
}
