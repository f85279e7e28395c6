package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// ErrAlreadySubscribed is returned when the newsletter endpoint rejects an
// email it already has.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// SubmitContact sends a contact-form message. All four fields are required
// before any network call.
func (c *Client) SubmitContact(ctx context.Context, msg domain.ContactMessage) error {
	if verr := domain.RequireFields(map[string]string{
		"name":    msg.Name,
		"email":   msg.Email,
		"subject": msg.Subject,
		"message": msg.Message,
	}, []string{"name", "email", "subject", "message"}); verr != nil {
		return verr
	}

	_, err := c.postJSON(ctx, http.MethodPost, "feedbacks/contact/", msg, false)
	return err
}

// SubscribeNewsletter signs an email up for the newsletter, mapping the
// backend's duplicate-email rejection onto ErrAlreadySubscribed.
func (c *Client) SubscribeNewsletter(ctx context.Context, email string) error {
	if verr := domain.RequireFields(map[string]string{"email": email}, []string{"email"}); verr != nil {
		return verr
	}

	_, err := c.postJSON(ctx, http.MethodPost, "feedbacks/newsletter/subscribe/",
		map[string]string{"email": email}, false)
	if err == nil {
		return nil
	}

	// Duplicate subscriptions come back as a field error on email.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		var fieldErr struct {
			Email []string `json:"email"`
		}
		if json.Unmarshal(apiErr.Body, &fieldErr) == nil &&
			len(fieldErr.Email) > 0 && strings.Contains(fieldErr.Email[0], "already exists") {
			return ErrAlreadySubscribed
		}
	}
	return err
}

// ListFeedbacks fetches the feedback left for the logged-in seller.
func (c *Client) ListFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	body, err := c.getAuthed(ctx, "feedbacks/")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Feedback](body)
}

// SubmitFeedback posts a piece of feedback.
func (c *Client) SubmitFeedback(ctx context.Context, fb domain.Feedback) error {
	if verr := domain.RequireFields(map[string]string{"text": fb.Text}, []string{"text"}); verr != nil {
		return verr
	}
	_, err := c.postJSON(ctx, http.MethodPost, "feedbacks/", fb, true)
	return err
}
