package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Refresher exchanges the stored refresh token for a new access token.
//
// Refresh never returns an error: every failure mode (no refresh token,
// network error, non-2xx, malformed body) comes back as "", and the caller
// falls through to its logged-out path. Concurrent callers share a single
// exchange via singleflight, so a burst of 401s costs one network call.
type Refresher struct {
	session *Session
	client  *http.Client
	url     string
	sfg     singleflight.Group
}

// NewRefresher builds a refresher hitting baseURL's token refresh endpoint.
// The client must be a plain one: routing the refresh call through the
// authenticated transport would recurse.
func NewRefresher(session *Session, client *http.Client, baseURL string) *Refresher {
	return &Refresher{
		session: session,
		client:  client,
		url:     strings.TrimSuffix(baseURL, "/") + "/auth/token/refresh/",
	}
}

// Refresh returns a fresh access token, or "" when the session cannot be
// refreshed. A returned token has already been persisted to the session.
func (r *Refresher) Refresh(ctx context.Context) string {
	v, _, _ := r.sfg.Do("refresh", func() (interface{}, error) {
		return r.refresh(ctx), nil
	})
	return v.(string)
}

func (r *Refresher) refresh(ctx context.Context) string {
	refresh := r.session.RefreshToken(ctx)
	if refresh == "" {
		return ""
	}

	body, err := json.Marshal(map[string]string{"refresh": refresh})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("token refresh failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Access == "" {
		return ""
	}

	if err := r.session.SetAccessToken(ctx, out.Access); err != nil {
		log.Printf("persist refreshed access token failed: %v", err)
	}
	return out.Access
}
