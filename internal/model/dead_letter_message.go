package model

import "time"

// DeadLetterMessage is a credit event Pub/Sub gave up delivering, persisted
// for offline replay.
type DeadLetterMessage struct {
	ID               string    `db:"id"`
	SubscriptionName string    `db:"subscription_name"`
	MessageID        string    `db:"message_id"`
	UserID           *string   `db:"user_id"` // Set when the payload decodes as a CreditEvent
	Payload          []byte    `db:"payload"`
	Attributes       []byte    `db:"attributes"` // Can be null
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
