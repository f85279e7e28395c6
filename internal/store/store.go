package store

import (
	"context"
	"errors"
)

// Store is the client-local keyed state holder: tokens, the cart, the
// checkout snapshot and a few flags all live here. Implementations persist
// across runs. The store is constructed once and passed to every component
// that needs it; nothing reads it through globals.
type Store interface {
	// Get returns the value under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

var ErrNotFound = errors.New("key not found")

// Well-known keys. The serialized formats under cartItems and checkoutItems
// are JSON arrays of cart items; checkoutTotal is a plain decimal string.
const (
	KeyAccessToken        = "access_token"
	KeyRefreshToken       = "refresh_token"
	KeyUserRole           = "user_role"
	KeyCartItems          = "cartItems"
	KeyCheckoutItems      = "checkoutItems"
	KeyCheckoutTotal      = "checkoutTotal"
	KeyOrderCompleted     = "orderCompleted"
	KeyRedirectAfterLogin = "redirect_after_login"
	KeyCurrentPlan        = "currentPlan"
)
