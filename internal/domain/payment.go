package domain

// PaymentSession is the server's answer to a payment initiation. The
// reference is generated by the backend and must be carried through the
// provider checkout and back for verification.
type PaymentSession struct {
	PublicKey string `json:"public_key"`
	Email     string `json:"email"`
	Amount    Price  `json:"amount"`
	Reference string `json:"reference"`
}

// VerifyResult is the outcome of a payment verification lookup.
type VerifyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (v VerifyResult) Succeeded() bool {
	return v.Status == "success"
}
