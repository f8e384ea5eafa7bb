// Package apiclient is the HTTP wrapper shared by the auth and
// recommendation clients. It resolves paths under <base>/api, attaches the
// bearer token when one is present and tags each call with a request id.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the current session token; "" means anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client performs JSON requests against the compass backend.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a Client for baseURL (trailing slashes are ignored). tokens
// may be nil for anonymous calls. A nil httpClient gets a client with no
// timeout; cancellation is left to the caller's context.
func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		tokens:     tokens,
		httpClient: httpClient,
	}
}

// BaseURL returns the resolved API root, including the /api suffix.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends a request with an optional JSON body.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)

	slog.Debug("api request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server not reachable at %s: %w", c.baseURL, err)
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// StatusError is returned by DecodeJSON for non-success responses.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Message extracts the "error" field of a JSON error body, or "".
func (e *StatusError) Message() string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(e.Body, &body) != nil {
		return ""
	}
	return body.Error
}

// DecodeJSON closes resp.Body and decodes it into v. Responses with a
// status of 400 or above yield a *StatusError. A nil v discards the body.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("server returned %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	if v == nil {
		_, err := io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
