package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `120.5`, 120.5},
		{"numeric string", `"100"`, 100},
		{"padded string", `" 42.5 "`, 42.5},
		{"garbage", `"abc"`, 0},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p.Float())
		})
	}
}

func TestQuantityUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"number", `3`, 3},
		{"numeric string", `"2"`, 2},
		{"zero coerced", `0`, 1},
		{"negative coerced", `-4`, 1},
		{"garbage", `"lots"`, 1},
		{"null", `null`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.in), &q))
			assert.Equal(t, tt.want, q.Int())
		})
	}
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, Price(150), ParsePrice("150"))
	assert.Equal(t, Price(0), ParsePrice("free"))
	assert.Equal(t, Price(0), ParsePrice(""))
	assert.Equal(t, Quantity(5), ParseQuantity("5"))
	assert.Equal(t, Quantity(1), ParseQuantity("0"))
	assert.Equal(t, Quantity(1), ParseQuantity("many"))
}

func TestSellerRefUnmarshal(t *testing.T) {
	var item CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","seller":"Jane's Shop"}`), &item))
	assert.Equal(t, "Jane's Shop", item.Seller.Name)
	assert.Nil(t, item.OrderSeller())

	item = CartItem{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","seller":{"id":7,"name":"Jane"}}`), &item))
	require.NotNil(t, item.OrderSeller())
	assert.Equal(t, "7", *item.OrderSeller())

	item = CartItem{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","seller_id":"12","seller":{"id":7}}`), &item))
	require.NotNil(t, item.OrderSeller())
	assert.Equal(t, "12", *item.OrderSeller(), "explicit seller_id wins")
}

func TestCartItemSubtotal(t *testing.T) {
	var item CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","price":"100","quantity":2}`), &item))
	assert.Equal(t, Price(200), item.Subtotal())
}

func TestProductToCartItem(t *testing.T) {
	p := Product{ID: 42, Name: "Desk Lamp", Price: 350, ImageURL: "https://cdn/x.jpg"}
	item := p.ToCartItem()
	assert.Equal(t, "42", item.ID)
	assert.Equal(t, Quantity(1), item.Quantity)
	assert.Equal(t, "https://cdn/x.jpg", item.Image)

	none := Product{ID: 1, Name: "Mystery"}
	assert.Equal(t, FallbackImage, none.ToCartItem().Image)
}
