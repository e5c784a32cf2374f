package model

import "time"

// Referral is a single-use invitation code issued by ReferrerID.
// IsUsed moves from false to true exactly once.
type Referral struct {
	ID           string     `db:"id" json:"id"`
	ReferrerID   string     `db:"referrer_id" json:"referrer_id"`
	RefereeEmail *string    `db:"referee_email" json:"referee_email,omitempty"`
	ReferralCode string     `db:"referral_code" json:"referral_code"`
	IsUsed       bool       `db:"is_used" json:"is_used"`
	UsedAt       *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Redemption is the result of consuming a referral code: the referral row
// after it was marked used and both credited balances.
type Redemption struct {
	Referral Referral
	Referrer CounterAdjustment
	Referee  CounterAdjustment
}

// ReferralStats summarizes the codes a user has issued.
type ReferralStats struct {
	Issued        int `json:"issued"`
	Redeemed      int `json:"redeemed"`
	Pending       int `json:"pending"`
	CreditsEarned int `json:"credits_earned"`
}
