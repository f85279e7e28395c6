package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// SellerRef decodes the seller field, which the API returns either as a
// display name string or as an embedded object carrying an id.
type SellerRef struct {
	ID   string
	Name string
}

func (s *SellerRef) UnmarshalJSON(data []byte) error {
	trimmed := string(data)
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil
		}
		s.Name = name
		return nil
	}
	var obj struct {
		ID   json.Number `json:"id"`
		Name string      `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	s.ID = obj.ID.String()
	s.Name = obj.Name
	return nil
}

func (s SellerRef) MarshalJSON() ([]byte, error) {
	switch {
	case s.ID == "" && s.Name == "":
		return []byte("null"), nil
	case s.ID == "":
		return json.Marshal(s.Name)
	default:
		return json.Marshal(struct {
			ID   string `json:"id"`
			Name string `json:"name,omitempty"`
		}{ID: s.ID, Name: s.Name})
	}
}

func (s SellerRef) IsZero() bool {
	return s.ID == "" && s.Name == ""
}

// CartItem is one line of the buyer's cart. Items are unique by ID and
// keep their insertion order for display.
type CartItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    Price     `json:"price"`
	SellerID string    `json:"seller_id,omitempty"`
	Seller   SellerRef `json:"seller,omitempty"`
	Image    string    `json:"image,omitempty"`
	Quantity Quantity  `json:"quantity"`
}

// Subtotal is price times quantity for this line. A quantity that never got
// set counts as 1, matching the decoding rule.
func (i CartItem) Subtotal() Price {
	q := i.Quantity
	if q < 1 {
		q = 1
	}
	return Price(i.Price.Float() * float64(q))
}

// OrderSeller resolves the seller reference for an order line: the explicit
// seller_id wins, then the embedded seller object's id, else nil.
func (i CartItem) OrderSeller() *string {
	if i.SellerID != "" {
		return &i.SellerID
	}
	if i.Seller.ID != "" {
		id := i.Seller.ID
		return &id
	}
	return nil
}

// SellerName is the display name shown next to the line.
func (i CartItem) SellerName() string {
	if i.Seller.Name != "" {
		return i.Seller.Name
	}
	return "Unknown Seller"
}

// CheckoutSnapshot is the frozen copy of the cart taken when checkout
// begins. The order flow operates on the snapshot so later changes to the
// live cart do not affect an order in progress.
type CheckoutSnapshot struct {
	Items      []CartItem `json:"items"`
	Subtotal   Price      `json:"subtotal"`
	CapturedAt time.Time  `json:"captured_at"`
}

func (s *CheckoutSnapshot) Empty() bool {
	return s == nil || len(s.Items) == 0
}

// FormatAmount renders a price the way the storefront does: no trailing
// zeros, plain decimal.
func FormatAmount(p Price) string {
	return strconv.FormatFloat(p.Float(), 'f', -1, 64)
}
