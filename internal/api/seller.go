package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// SellerProfile fetches the logged-in seller's business profile.
func (c *Client) SellerProfile(ctx context.Context) (*domain.SellerProfile, error) {
	body, err := c.getAuthed(ctx, "users/seller-profile/")
	if err != nil {
		return nil, err
	}

	var profile domain.SellerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

// UpdateSellerProfile replaces the seller's business profile.
func (c *Client) UpdateSellerProfile(ctx context.Context, profile domain.SellerProfile) error {
	_, err := c.postJSON(ctx, http.MethodPut, "users/seller-profile/", profile, true)
	return err
}

// ListAds fetches the seller's ad campaigns.
func (c *Client) ListAds(ctx context.Context) ([]domain.Ad, error) {
	body, err := c.getAuthed(ctx, "ads/")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Ad](body)
}

// AdSubmission is a new ad campaign. Image is optional; when set it is
// uploaded as a multipart file part named "image".
type AdSubmission struct {
	Title       string
	Description string
	Image       io.Reader
	ImageName   string
}

// CreateAd submits an ad campaign as a multipart form, the shape the ads
// endpoint expects for file uploads.
func (c *Client) CreateAd(ctx context.Context, ad AdSubmission) error {
	if verr := domain.RequireFields(map[string]string{
		"title":       ad.Title,
		"description": ad.Description,
	}, []string{"title", "description"}); verr != nil {
		return verr
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("title", ad.Title); err != nil {
		return err
	}
	if err := form.WriteField("description", ad.Description); err != nil {
		return err
	}
	if ad.Image != nil {
		name := ad.ImageName
		if name == "" {
			name = "ad-image"
		}
		part, err := form.CreateFormFile("image", name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, ad.Image); err != nil {
			return fmt.Errorf("read ad image: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("ads/"), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	_, err = c.send(req)
	return err
}
