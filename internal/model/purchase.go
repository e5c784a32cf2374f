package model

import "time"

// CreditPurchase records a paid Stripe checkout session that has been
// credited. StripeSessionID is unique, which makes webhook retries idempotent.
type CreditPurchase struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	StripeSessionID string    `db:"stripe_session_id"`
	Credits         int       `db:"credits"`
	CreatedAt       time.Time `db:"created_at"`
}
