// Package cart is the client-local shopping cart: an ordered collection of
// line items keyed by product id, persisted after every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/store"
)

var ErrNoSuchItem = errors.New("no such cart item")

type Cart struct {
	store store.Store
}

func New(s store.Store) *Cart {
	return &Cart{store: s}
}

// Items loads the cart. A missing or malformed persisted value reads as an
// empty cart; only store failures are reported.
func (c *Cart) Items(ctx context.Context) ([]domain.CartItem, error) {
	raw, err := c.store.Get(ctx, store.KeyCartItems)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, nil
	}
	return items, nil
}

// Add merges the item into the cart: an existing line with the same id gets
// its quantity bumped by one (whatever quantity the incoming item claims);
// a new product is appended with quantity 1.
func (c *Cart) Add(ctx context.Context, item domain.CartItem) error {
	items, err := c.Items(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		items = append(items, item)
	}

	return c.persist(ctx, items)
}

// RemoveAt deletes the line at the given display position.
func (c *Cart) RemoveAt(ctx context.Context, index int) error {
	items, err := c.Items(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return ErrNoSuchItem
	}
	items = append(items[:index], items[index+1:]...)
	return c.persist(ctx, items)
}

// RemoveByID deletes the line for the given product id.
func (c *Cart) RemoveByID(ctx context.Context, id string) error {
	items, err := c.Items(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items = append(items[:i], items[i+1:]...)
			return c.persist(ctx, items)
		}
	}
	return ErrNoSuchItem
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, store.KeyCartItems)
}

// Total is the cart subtotal: Σ price × quantity with lenient coercion.
func (c *Cart) Total(ctx context.Context) (domain.Price, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return 0, err
	}
	return Subtotal(items), nil
}

// Count is the number of lines, shown on the cart badge.
func (c *Cart) Count(ctx context.Context) (int, error) {
	items, err := c.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Subtotal sums line subtotals for any slice of items.
func Subtotal(items []domain.CartItem) domain.Price {
	var total domain.Price
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) persist(ctx context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return c.store.Set(ctx, store.KeyCartItems, string(data))
}
