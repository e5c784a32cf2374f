package dto

import "time"

type CreateReferralRequestDTO struct {
	RefereeEmail *string `json:"referee_email,omitempty" doc:"Optional address to send the invite to"`
}

type ReferralResponseDTO struct {
	ID           string     `json:"id"`
	ReferralCode string     `json:"referral_code"`
	RefereeEmail *string    `json:"referee_email,omitempty"`
	IsUsed       bool       `json:"is_used"`
	UsedAt       *time.Time `json:"used_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ReferralStatsDTO struct {
	Issued        int `json:"issued"`
	Redeemed      int `json:"redeemed"`
	Pending       int `json:"pending"`
	CreditsEarned int `json:"credits_earned"`
}

type ReferralListResponseDTO struct {
	Referrals []ReferralResponseDTO `json:"referrals"`
	Stats     ReferralStatsDTO      `json:"stats"`
}

type RedeemReferralRequestDTO struct {
	Code string `json:"code" minLength:"1"`
}

// RedeemReferralResponseDTO reports the redeemer's balance after the bonus.
type RedeemReferralResponseDTO struct {
	Redeemed bool `json:"redeemed"`
	Balance  int  `json:"balance"`
}
