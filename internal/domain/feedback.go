package domain

// ContactMessage is a message sent through the contact form endpoint.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Feedback is a piece of buyer feedback shown on the seller dashboard.
type Feedback struct {
	ID       int64  `json:"id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Text     string `json:"text"`
}
