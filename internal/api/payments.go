package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// InitiatePayment opens a payment session for a one-off charge. The
// returned session carries the provider reference the checkout flow must
// bring back for verification.
func (c *Client) InitiatePayment(ctx context.Context, fullname, email string, amount domain.Price) (*domain.PaymentSession, error) {
	if verr := domain.RequireFields(map[string]string{
		"fullname": fullname,
		"email":    email,
	}, []string{"fullname", "email"}); verr != nil {
		return nil, verr
	}

	body, err := c.postJSON(ctx, http.MethodPost, "payments/initiate/", map[string]any{
		"fullname": fullname,
		"email":    email,
		"amount":   amount.Float(),
	}, true)
	if err != nil {
		return nil, err
	}

	var session domain.PaymentSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode payment session: %w", err)
	}
	return &session, nil
}

// InitPlanPayment opens a payment session for a subscription plan upgrade
// and returns the backend-generated reference.
func (c *Client) InitPlanPayment(ctx context.Context, plan, email string, amount domain.Price) (string, error) {
	if verr := domain.RequireFields(map[string]string{
		"plan":  plan,
		"email": email,
	}, []string{"plan", "email"}); verr != nil {
		return "", verr
	}

	body, err := c.postJSON(ctx, http.MethodPost, "payments/init/", map[string]any{
		"amount": amount.Float(),
		"plan":   plan,
		"email":  email,
	}, true)
	if err != nil {
		return "", err
	}

	var out struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Reference == "" {
		return "", fmt.Errorf("payment initialization returned no reference")
	}
	return out.Reference, nil
}

// VerifyPayment asks the backend whether the provider confirmed the charge
// behind reference.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*domain.VerifyResult, error) {
	body, err := c.getAuthed(ctx, "payments/verify/"+url.PathEscape(reference)+"/")
	if err != nil {
		return nil, err
	}

	var result domain.VerifyResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode verification: %w", err)
	}
	return &result, nil
}
