package domain

// SellerProfile is the seller's business profile as held by the API.
type SellerProfile struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	NationalID   string `json:"national_id"`
	BusinessType string `json:"business_type"`
}

// Ad is an advertisement campaign run by a seller.
type Ad struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}
