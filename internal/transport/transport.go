// Package transport carries the one retry policy every API call shares:
// a request answered with 401 gets a single token refresh and a single
// replay, bounding the worst case to two round trips.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// TokenRefresher yields a replacement access token, or "" when the session
// cannot be refreshed and the caller should treat the 401 as final.
type TokenRefresher interface {
	Refresh(ctx context.Context) string
}

// AuthTransport is an http.RoundTripper that retries once after an
// expired-token 401:
//
//   - any status other than 401 passes through untouched;
//   - on 401, the refresher runs exactly once; if it yields nothing the
//     original 401 is returned with its body intact;
//   - otherwise the request is replayed once with the new bearer token and
//     whatever comes back is returned, even another 401.
//
// Requests without an Authorization header get the same treatment: a 401
// there still triggers the one refresh+replay.
type AuthTransport struct {
	Base      http.RoundTripper
	Refresher TokenRefresher
}

func New(base http.RoundTripper, refresher TokenRefresher) *AuthTransport {
	return &AuthTransport{Base: base, Refresher: refresher}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// A replay needs a replayable body. net/http fills GetBody for the
	// common in-memory readers; buffer anything else up front.
	if req.Body != nil && req.GetBody == nil {
		buf, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(buf))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	token := t.Refresher.Refresh(req.Context())
	if token == "" {
		// Caller owns the 401 from here (typically: forget the session
		// and send the user back to login).
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)

	// The original response is dead; release the connection.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return base.RoundTrip(retry)
}
