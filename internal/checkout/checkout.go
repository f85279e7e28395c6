// Package checkout drives the order flow: freeze the cart into a snapshot,
// assemble the submission from buyer input, place the order, and clear the
// client state only once the server has accepted it.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/api"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/cart"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to check out")
	ErrSessionExpired = errors.New("session expired, log in again")
)

type Checkout struct {
	store   store.Store
	cart    *cart.Cart
	session *auth.Session
	api     *api.Client
}

func New(st store.Store, c *cart.Cart, session *auth.Session, client *api.Client) *Checkout {
	return &Checkout{store: st, cart: c, session: session, api: client}
}

// Begin freezes the live cart into the checkout snapshot. It requires a
// usable session: with no access token at all the caller is sent to login
// (the intended destination is remembered); with a token the protected
// test endpoint is probed, and a 401 that survives the transparent refresh
// means the session is truly gone.
func (c *Checkout) Begin(ctx context.Context) (*domain.CheckoutSnapshot, error) {
	items, err := c.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if c.session.AccessToken(ctx) == "" {
		_ = c.session.RememberRedirect(ctx, "checkout")
		return nil, api.ErrLoginRequired
	}
	if err := c.api.Ping(ctx); err != nil {
		if api.IsAuthError(err) {
			_ = c.session.RememberRedirect(ctx, "checkout")
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	snapshot := &domain.CheckoutSnapshot{
		Items:      items,
		Subtotal:   cart.Subtotal(items),
		CapturedAt: time.Now(),
	}

	data, err := json.Marshal(snapshot.Items)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, store.KeyCheckoutItems, string(data)); err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, store.KeyCheckoutTotal, domain.FormatAmount(snapshot.Subtotal)); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Snapshot loads the frozen checkout state. Leftovers from a completed
// order are swept first, so a finished checkout never resurfaces. The
// subtotal is recomputed from the items; the stored total is only a
// fallback for a snapshot persisted without them.
func (c *Checkout) Snapshot(ctx context.Context) (*domain.CheckoutSnapshot, error) {
	if done, _ := c.store.Get(ctx, store.KeyOrderCompleted); done == "true" {
		if err := c.sweep(ctx, true); err != nil {
			return nil, err
		}
		return &domain.CheckoutSnapshot{}, nil
	}

	snapshot := &domain.CheckoutSnapshot{}
	if raw, err := c.store.Get(ctx, store.KeyCheckoutItems); err == nil {
		// Malformed snapshot data reads as empty, same as the cart.
		_ = json.Unmarshal([]byte(raw), &snapshot.Items)
	}

	if len(snapshot.Items) > 0 {
		snapshot.Subtotal = cart.Subtotal(snapshot.Items)
	} else if raw, err := c.store.Get(ctx, store.KeyCheckoutTotal); err == nil {
		snapshot.Subtotal = domain.ParsePrice(raw)
	}
	return snapshot, nil
}

// PlaceOrder submits the payload. Only a server acceptance clears the live
// cart, the snapshot and the stored total; any failure leaves every piece
// of client state in place so the user can retry.
func (c *Checkout) PlaceOrder(ctx context.Context, payload *domain.OrderPayload) (*domain.Order, error) {
	order, err := c.api.SubmitOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	if err := c.sweep(ctx, false); err != nil {
		return order, err
	}
	if err := c.store.Set(ctx, store.KeyOrderCompleted, "true"); err != nil {
		return order, err
	}
	return order, nil
}

func (c *Checkout) sweep(ctx context.Context, includeFlag bool) error {
	keys := []string{store.KeyCartItems, store.KeyCheckoutItems, store.KeyCheckoutTotal}
	if includeFlag {
		keys = append(keys, store.KeyOrderCompleted)
	}
	return c.store.Delete(ctx, keys...)
}
