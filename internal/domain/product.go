package domain

import "strconv"

// FallbackImage is shown when a product has no usable image.
const FallbackImage = "https://via.placeholder.com/230?text=No+Image"

// Product is a marketplace listing. Top listings carry a few extra
// promotional fields (discount, old price, rating) that are absent from the
// regular catalog.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     Price     `json:"price"`
	Seller    SellerRef `json:"seller,omitempty"`
	Location  string    `json:"location,omitempty"`
	Category  string    `json:"category,omitempty"`
	Image     string    `json:"image,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	DateAdded string    `json:"date_added,omitempty"`
	Discount  int       `json:"discount,omitempty"`
	IsNew     bool      `json:"is_new,omitempty"`
	OldPrice  Price     `json:"old_price,omitempty"`
	Rating    int       `json:"rating,omitempty"`
}

// DisplayImage prefers image, then image_url, then the placeholder.
func (p Product) DisplayImage() string {
	if p.Image != "" {
		return p.Image
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return FallbackImage
}

// ToCartItem shapes the product for the cart: quantity starts at 1, the
// seller display name is kept for rendering.
func (p Product) ToCartItem() CartItem {
	return CartItem{
		ID:       strconv.FormatInt(p.ID, 10),
		Name:     p.Name,
		Price:    p.Price,
		Seller:   p.Seller,
		Image:    p.DisplayImage(),
		Quantity: 1,
	}
}
