package dto

import "time"

type CreditPackDTO struct {
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

type CheckoutRequestDTO struct {
	Pack string `json:"pack" minLength:"1"`
}

type CheckoutResponseDTO struct {
	URL string `json:"url"`
}

// PurchaseDTO is one credited Stripe checkout.
type PurchaseDTO struct {
	ID              string    `json:"id"`
	StripeSessionID string    `json:"stripe_session_id"`
	Credits         int       `json:"credits"`
	CreatedAt       time.Time `json:"created_at"`
}
