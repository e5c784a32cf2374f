package dto

import "time"

// CounterResponseDTO is a user's current message balance.
type CounterResponseDTO struct {
	UserID       string    `json:"user_id"`
	MessageCount int       `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AmountRequestDTO carries a non-negative number of messages, one when omitted.
type AmountRequestDTO struct {
	Amount int `json:"amount,omitempty" required:"false" default:"1" minimum:"0" doc:"Number of messages"`
}

type CreditCheckResponseDTO struct {
	Required  int  `json:"required"`
	HasEnough bool `json:"has_enough"`
}

// GrantCreditsRequestDTO is the operator request to credit a user.
type GrantCreditsRequestDTO struct {
	UserID string `json:"user_id" minLength:"1"`
	Amount int    `json:"amount"`
	Reason string `json:"reason,omitempty" doc:"Audit label, defaults to manual_grant"`
}
