package domain

// OrderItem is one line of the order submission, shaped the way the orders
// endpoint expects it.
type OrderItem struct {
	Product  string   `json:"product"`
	Seller   *string  `json:"seller"`
	Price    Price    `json:"price"`
	Quantity Quantity `json:"quantity"`
}

// OrderPayload is the finalized structure submitted to create an order.
// It is derived from a checkout snapshot plus buyer-entered fields and the
// selected delivery option.
type OrderPayload struct {
	BuyerName      string      `json:"buyer_name"`
	BuyerPhone     string      `json:"buyer_phone"`
	BuyerAddress   string      `json:"buyer_address"`
	PaymentMethod  string      `json:"payment_method"`
	DeliveryOption string      `json:"delivery_option"`
	DeliveryFee    Price       `json:"delivery_fee"`
	TotalPrice     Price       `json:"total_price"`
	Items          []OrderItem `json:"items_data"`
}

// Order is an order as returned by the API (listing, search, tracking).
type Order struct {
	ID            int64  `json:"id"`
	BuyerName     string `json:"buyer_name"`
	BuyerPhone    string `json:"buyer_phone,omitempty"`
	TotalPrice    Price  `json:"total_price"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Status        string `json:"status,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}
