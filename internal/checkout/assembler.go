package checkout

import (
	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

// BuyerDetails are the buyer-entered checkout fields.
type BuyerDetails struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod string
}

// DeliveryOption is the chosen delivery choice together with its fee
// attribute, carried as the raw string the form supplied.
type DeliveryOption struct {
	Name string
	Fee  string
}

// BuildPayload shapes a checkout snapshot plus buyer input into the order
// submission. Validation happens here, before any network call: every
// buyer field and the delivery option must be non-blank, and the snapshot
// must hold at least one item. An unparseable delivery fee counts as 0.
func BuildPayload(snapshot *domain.CheckoutSnapshot, buyer BuyerDetails, delivery DeliveryOption) (*domain.OrderPayload, error) {
	if verr := domain.RequireFields(map[string]string{
		"buyer_name":      buyer.Name,
		"buyer_phone":     buyer.Phone,
		"buyer_address":   buyer.Address,
		"payment_method":  buyer.PaymentMethod,
		"delivery_option": delivery.Name,
	}, []string{"buyer_name", "buyer_phone", "buyer_address", "payment_method", "delivery_option"}); verr != nil {
		return nil, verr
	}

	if snapshot.Empty() {
		return nil, ErrEmptyCart
	}

	fee := domain.ParsePrice(delivery.Fee)

	items := make([]domain.OrderItem, 0, len(snapshot.Items))
	var subtotal domain.Price
	for _, item := range snapshot.Items {
		items = append(items, domain.OrderItem{
			Product:  item.ID,
			Seller:   item.OrderSeller(),
			Price:    item.Price,
			Quantity: item.Quantity,
		})
		subtotal += item.Subtotal()
	}

	return &domain.OrderPayload{
		BuyerName:      buyer.Name,
		BuyerPhone:     buyer.Phone,
		BuyerAddress:   buyer.Address,
		PaymentMethod:  buyer.PaymentMethod,
		DeliveryOption: delivery.Name,
		DeliveryFee:    fee,
		TotalPrice:     subtotal + fee,
		Items:          items,
	}, nil
}
