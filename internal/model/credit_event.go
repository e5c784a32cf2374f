package model

import "time"

// Ledger reasons attached to balance changes. They label audit events only.
const (
	ReasonMessageSent  = "message_sent"
	ReasonReferralSent = "referral_sent"
	ReasonReferralUsed = "referral_used"
	ReasonPurchase     = "purchase"
	ReasonManualGrant  = "manual_grant"
)

// CreditEvent is published for every balance change.
type CreditEvent struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Delta        int       `json:"delta"`
	BalanceAfter int       `json:"balance_after"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}
