package operation

import "tripbudget/internal/api/v1/dto"

// Credit Ledger Operations

type GetCreditsInput struct {
	// No input needed - user ID comes from auth context
}

type GetCreditsOutput struct {
	Body dto.CounterResponseDTO `json:"body"`
}

type CheckCreditsInput struct {
	Required int `query:"required" default:"1" minimum:"0" doc:"Messages the caller is about to spend"`
}

type CheckCreditsOutput struct {
	Body dto.CreditCheckResponseDTO `json:"body"`
}

type ChargeCreditsInput struct {
	Body dto.AmountRequestDTO `json:"body"`
}

type ChargeCreditsOutput struct {
	Body dto.CounterResponseDTO `json:"body"`
}

type DecrementCreditsInput struct {
	Body dto.AmountRequestDTO `json:"body"`
}

type DecrementCreditsOutput struct {
	Body dto.CounterResponseDTO `json:"body"`
}

// Admin Operations

type GrantCreditsInput struct {
	Body dto.GrantCreditsRequestDTO `json:"body"`
}

type GrantCreditsOutput struct {
	Body dto.CounterResponseDTO `json:"body"`
}
