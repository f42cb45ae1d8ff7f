package models

import "time"

// PaymentRequest is handed to the payment provider on confirmation.
type PaymentRequest struct {
	SessionID   string
	Amount      int // whole rupees
	Currency    string
	Description string
	Email       string
	Metadata    map[string]string
}

// Invoice is the provider's record of a charge.
type Invoice struct {
	InvoiceID    string    `json:"invoiceId"`
	PaymentID    string    `json:"paymentId,omitempty"`
	Provider     string    `json:"provider"`
	Amount       int       `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	ClientSecret string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
