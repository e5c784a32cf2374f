package model

import "time"

// MessageCounter is a user's remaining chat-message allowance.
// Exactly one row exists per user and it is the only authority for the balance.
type MessageCounter struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	MessageCount int       `db:"message_count" json:"message_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CounterAdjustment is the outcome of a single atomic balance change.
type CounterAdjustment struct {
	Counter         MessageCounter
	PreviousBalance int
	// Created is true when the row was materialized by this adjustment.
	Created bool
}

// Delta is the change actually applied, which differs from the requested
// amount when a debit is clamped at zero.
func (a CounterAdjustment) Delta() int {
	return a.Counter.MessageCount - a.PreviousBalance
}
