package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	assert.Equal(t, "", s.AccessToken(ctx))
	assert.Equal(t, DefaultRole, s.Role(ctx))

	require.NoError(t, s.SetTokens(ctx, "acc", "ref", "seller"))
	assert.Equal(t, "acc", s.AccessToken(ctx))
	assert.Equal(t, "ref", s.RefreshToken(ctx))
	assert.Equal(t, "seller", s.Role(ctx))

	require.NoError(t, s.SetAccessToken(ctx, "acc2"))
	assert.Equal(t, "acc2", s.AccessToken(ctx))
	assert.Equal(t, "ref", s.RefreshToken(ctx), "refresh token survives an access refresh")

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, "", s.AccessToken(ctx))
	assert.Equal(t, "", s.RefreshToken(ctx))
}

func TestSession_EmptyRoleDefaultsToBuyer(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	require.NoError(t, s.SetTokens(ctx, "acc", "ref", ""))
	assert.Equal(t, "buyer", s.Role(ctx))
}

func TestSession_Redirect(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	assert.Equal(t, "", s.TakeRedirect(ctx))

	require.NoError(t, s.RememberRedirect(ctx, "checkout"))
	assert.Equal(t, "checkout", s.TakeRedirect(ctx))
	assert.Equal(t, "", s.TakeRedirect(ctx), "redirect is consumed once")
}

func TestSession_TokenInfo(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	_, err := s.TokenInfo(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, s.SetTokens(ctx, signed, "ref", "buyer"))

	info, err := s.TokenInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}
