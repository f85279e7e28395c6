package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/auth"
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// Credentials is a username/password login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is a new account submission.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Student  string `json:"student,omitempty"`
	Agreed   bool   `json:"is_verified"`
}

// Login exchanges credentials for tokens, stores them in the session and
// returns the account role (buyer when the server sends none).
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	if verr := domain.RequireFields(map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}, []string{"username", "password"}); verr != nil {
		return "", verr
	}

	body, err := c.postJSON(ctx, http.MethodPost, "auth/token/", creds, false)
	if err != nil {
		return "", err
	}

	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		Role    string `json:"role"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}

	if out.Role == "" {
		out.Role = auth.DefaultRole
	}
	if err := c.session.SetTokens(ctx, out.Access, out.Refresh, out.Role); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return out.Role, nil
}

// Register creates an account. The caller signs in afterwards.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if verr := domain.RequireFields(map[string]string{
		"username": reg.Username,
		"email":    reg.Email,
		"password": reg.Password,
	}, []string{"username", "email", "password"}); verr != nil {
		return verr
	}

	_, err := c.postJSON(ctx, http.MethodPost, "users/register/", reg, false)
	return err
}

// ForgotPassword asks the backend to send a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if verr := domain.RequireFields(map[string]string{"email": email}, []string{"email"}); verr != nil {
		return verr
	}
	_, err := c.postJSON(ctx, http.MethodPost, "users/forgot-password/", map[string]string{"email": email}, false)
	return err
}

// Ping hits the protected test endpoint. A nil return means the session is
// usable; an auth error means even the refresh could not rescue it.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.getAuthed(ctx, "auth/test/")
	return err
}
