package api

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// ProductQuery narrows a catalog listing. Zero values mean "everything".
type ProductQuery struct {
	Page     int
	Search   string
	Category string
}

// ListProducts fetches the public catalog. No auth header is attached; the
// endpoint is public.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" && q.Category != "all" {
		params.Set("category", q.Category)
	}

	path := "products/products/"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](body)
}

// TopListings fetches the promoted storefront listings.
func (c *Client) TopListings(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "toplistings/")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](body)
}

// Sort options for FilterProducts/SortProducts.
const (
	SortLowest  = "lowest"
	SortHighest = "highest"
	SortNewest  = "newest"
)

// FilterProducts applies the storefront's client-side category and search
// filters. Search matches the product name or the seller display name,
// case-insensitively.
func FilterProducts(items []domain.Product, category, search string) []domain.Product {
	out := make([]domain.Product, 0, len(items))
	search = strings.ToLower(strings.TrimSpace(search))
	for _, p := range items {
		if category != "" && category != "all" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Seller.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts orders a listing in place by the given option; unknown
// options leave the order untouched.
func SortProducts(items []domain.Product, option string) {
	switch option {
	case SortLowest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortHighest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortNewest:
		// date_added is ISO-8601, so the lexical order is the time order.
		sort.SliceStable(items, func(i, j int) bool { return items[i].DateAdded > items[j].DateAdded })
	}
}
