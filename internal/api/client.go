// Package api is the REST client for the marketplace backend. Every
// authenticated call goes through the shared retry transport, so a stale
// access token costs at most one transparent refresh per call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
)

var (
	// ErrLoginRequired means the call needs a session and none is stored.
	ErrLoginRequired = errors.New("login required")
)

// APIError is a non-2xx answer from the backend, with the human-readable
// message dug out of the response body when there is one. Body keeps the
// raw response for callers that inspect field-level errors.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server %d: %s", e.Status, e.Message)
}

// IsAuthError reports whether err is a 401 from the backend, i.e. the
// session is gone even after the transparent refresh attempt.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client talks to the marketplace API. The http.Client it is given carries
// the auth retry transport; the session supplies the bearer token attached
// to authenticated requests.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *auth.Session
}

func New(baseURL string, httpc *http.Client, session *auth.Session) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		session: session,
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// get issues an unauthenticated GET and returns the raw 2xx body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// getAuthed issues a GET with the session's bearer token.
func (c *Client) getAuthed(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}
	return c.send(req)
}

// postJSON issues a JSON POST/PUT, optionally authenticated.
func (c *Client) postJSON(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		if err := c.authorize(ctx, req); err != nil {
			return nil, err
		}
	}
	return c.send(req)
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	token := c.session.AccessToken(ctx)
	if token == "" {
		return ErrLoginRequired
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(body), Body: body}
	}
	return body, nil
}

// errorMessage pulls a displayable message from an error body: detail
// first, then message, else a generic string. Bodies are not always JSON.
func errorMessage(body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return "request failed"
}

// decodeList decodes either a bare JSON array or the paginated
// {"results": [...]} envelope. Anything else decodes as an empty list.
func decodeList[T any](body []byte) ([]T, error) {
	var bare []T
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected list response: %w", err)
	}
	return envelope.Results, nil
}
