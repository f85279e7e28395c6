package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// SubmitOrder posts a finished order payload. The returned order is the
// server's view of what was created.
func (c *Client) SubmitOrder(ctx context.Context, payload *domain.OrderPayload) (*domain.Order, error) {
	body, err := c.postJSON(ctx, http.MethodPost, "orders/", payload, true)
	if err != nil {
		return nil, err
	}

	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		// Some deployments answer with a bare confirmation; the order id
		// is a nicety, not a requirement.
		return &domain.Order{}, nil
	}
	return &order, nil
}

// MyOrders lists the orders belonging to the logged-in account (buyer
// purchases or seller sales, depending on the role).
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	body, err := c.getAuthed(ctx, "orders/mine/")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](body)
}

// SearchOrders looks orders up by buyer name.
func (c *Client) SearchOrders(ctx context.Context, buyerName string) ([]domain.Order, error) {
	body, err := c.getAuthed(ctx, "orders/search/?"+url.Values{"buyer_name": {buyerName}}.Encode())
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](body)
}

// TrackOrder fetches a single order's state.
func (c *Client) TrackOrder(ctx context.Context, id int64) (*domain.Order, error) {
	body, err := c.getAuthed(ctx, fmt.Sprintf("orders/track/%d/", id))
	if err != nil {
		return nil, err
	}

	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}
