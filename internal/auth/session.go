package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

// DefaultRole is assumed when the login response carries no role.
const DefaultRole = "buyer"

// Session wraps the keyed store with typed access to the auth state:
// the short-lived access token, the refresh token and the user role.
type Session struct {
	store store.Store
}

func NewSession(s store.Store) *Session {
	return &Session{store: s}
}

// AccessToken returns the stored access token, or "" when logged out.
func (s *Session) AccessToken(ctx context.Context) string {
	return s.value(ctx, store.KeyAccessToken)
}

// RefreshToken returns the stored refresh token, or "".
func (s *Session) RefreshToken(ctx context.Context) string {
	return s.value(ctx, store.KeyRefreshToken)
}

// Role returns the stored role, defaulting to buyer.
func (s *Session) Role(ctx context.Context) string {
	if role := s.value(ctx, store.KeyUserRole); role != "" {
		return role
	}
	return DefaultRole
}

// SetTokens stores a full login result.
func (s *Session) SetTokens(ctx context.Context, access, refresh, role string) error {
	if role == "" {
		role = DefaultRole
	}
	if err := s.store.Set(ctx, store.KeyAccessToken, access); err != nil {
		return err
	}
	if err := s.store.Set(ctx, store.KeyRefreshToken, refresh); err != nil {
		return err
	}
	return s.store.Set(ctx, store.KeyUserRole, role)
}

// SetAccessToken replaces just the access token, as a refresh does.
func (s *Session) SetAccessToken(ctx context.Context, access string) error {
	return s.store.Set(ctx, store.KeyAccessToken, access)
}

// Clear logs the session out.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, store.KeyAccessToken, store.KeyRefreshToken, store.KeyUserRole)
}

// RememberRedirect records where to resume after the user logs back in.
func (s *Session) RememberRedirect(ctx context.Context, target string) error {
	return s.store.Set(ctx, store.KeyRedirectAfterLogin, target)
}

// TakeRedirect returns and clears the recorded post-login target.
func (s *Session) TakeRedirect(ctx context.Context) string {
	target := s.value(ctx, store.KeyRedirectAfterLogin)
	if target != "" {
		_ = s.store.Delete(ctx, store.KeyRedirectAfterLogin)
	}
	return target
}

func (s *Session) value(ctx context.Context, key string) string {
	v, err := s.store.Get(ctx, key)
	if err != nil {
		return ""
	}
	return v
}

var ErrNoToken = errors.New("no access token in session")

// TokenInfo is pulled from the access token without verifying its
// signature. Display only; the server remains the authority.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// TokenInfo decodes the stored access token's claims.
func (s *Session) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	token := s.AccessToken(ctx)
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
