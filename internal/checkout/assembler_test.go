package checkout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmustmkthub-glitch/Markethub-Frontend/internal/domain"
)

func validBuyer() BuyerDetails {
	return BuyerDetails{
		Name:          "Jane Doe",
		Phone:         "0712345678",
		Address:       "Hostel B, Room 12",
		PaymentMethod: "mpesa",
	}
}

func snapshotOf(items ...domain.CartItem) *domain.CheckoutSnapshot {
	var subtotal domain.Price
	for _, i := range items {
		subtotal += i.Subtotal()
	}
	return &domain.CheckoutSnapshot{Items: items, Subtotal: subtotal}
}

func TestBuildPayload_TotalsIncludeDeliveryFee(t *testing.T) {
	snap := snapshotOf(domain.CartItem{ID: "p1", Price: 200, Quantity: 1})

	payload, err := BuildPayload(snap, validBuyer(), DeliveryOption{Name: "boda", Fee: "100"})
	require.NoError(t, err)

	assert.Equal(t, domain.Price(100), payload.DeliveryFee)
	assert.Equal(t, domain.Price(300), payload.TotalPrice)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "p1", payload.Items[0].Product)
}

func TestBuildPayload_MissingPhoneRejected(t *testing.T) {
	snap := snapshotOf(domain.CartItem{ID: "p1", Price: 200, Quantity: 1})
	buyer := validBuyer()
	buyer.Phone = "   "

	_, err := BuildPayload(snap, buyer, DeliveryOption{Name: "boda", Fee: "100"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"buyer_phone"}, verr.Missing)
}

func TestBuildPayload_EmptySnapshotRejected(t *testing.T) {
	_, err := BuildPayload(&domain.CheckoutSnapshot{}, validBuyer(), DeliveryOption{Name: "boda"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildPayload_UnparseableFeeDefaultsToZero(t *testing.T) {
	snap := snapshotOf(domain.CartItem{ID: "p1", Price: 500, Quantity: 2})

	payload, err := BuildPayload(snap, validBuyer(), DeliveryOption{Name: "pickup", Fee: "free"})
	require.NoError(t, err)
	assert.Equal(t, domain.Price(0), payload.DeliveryFee)
	assert.Equal(t, domain.Price(1000), payload.TotalPrice)
}

func TestBuildPayload_SellerFallback(t *testing.T) {
	snap := snapshotOf(
		domain.CartItem{ID: "p1", Price: 10, Quantity: 1, SellerID: "5"},
		domain.CartItem{ID: "p2", Price: 10, Quantity: 1, Seller: domain.SellerRef{ID: "7", Name: "Jane"}},
		domain.CartItem{ID: "p3", Price: 10, Quantity: 1, Seller: domain.SellerRef{Name: "Anonymous"}},
	)

	payload, err := BuildPayload(snap, validBuyer(), DeliveryOption{Name: "boda", Fee: "0"})
	require.NoError(t, err)
	require.Len(t, payload.Items, 3)

	require.NotNil(t, payload.Items[0].Seller)
	assert.Equal(t, "5", *payload.Items[0].Seller)
	require.NotNil(t, payload.Items[1].Seller)
	assert.Equal(t, "7", *payload.Items[1].Seller)
	assert.Nil(t, payload.Items[2].Seller, "name-only seller maps to null")
}

func TestBuildPayload_WireShape(t *testing.T) {
	snap := snapshotOf(domain.CartItem{ID: "p1", Price: 200, Quantity: 2})

	payload, err := BuildPayload(snap, validBuyer(), DeliveryOption{Name: "boda", Fee: "50"})
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	for _, key := range []string{
		"buyer_name", "buyer_phone", "buyer_address",
		"payment_method", "delivery_option", "delivery_fee", "total_price", "items_data",
	} {
		assert.Contains(t, wire, key)
	}

	lines := wire["items_data"].([]any)
	line := lines[0].(map[string]any)
	assert.Contains(t, line, "seller", "seller is present even when null")
	assert.Nil(t, line["seller"])
}
