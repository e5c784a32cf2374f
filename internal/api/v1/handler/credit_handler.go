package handler

import (
	"context"
	"errors"
	"net/http"

	"tripbudget/internal/api/v1/operation"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// CreditHandler exposes the message ledger.
type CreditHandler struct {
	ledger service.LedgerService
	logger zerolog.Logger
}

func NewCreditHandler(ledger service.LedgerService, logger zerolog.Logger) *CreditHandler {
	return &CreditHandler{ledger: ledger, logger: logger}
}

// GetCredits returns the caller's balance, seeding it on first access.
func (h *CreditHandler) GetCredits(ctx context.Context, input *operation.GetCreditsInput) (*operation.GetCreditsOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	counter, err := h.ledger.GetOrCreateCounter(ctx, userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load message counter")
		return nil, huma.Error500InternalServerError("Failed to load credits")
	}
	return &operation.GetCreditsOutput{Body: toCounterDTO(counter)}, nil
}

func (h *CreditHandler) CheckCredits(ctx context.Context, input *operation.CheckCreditsInput) (*operation.CheckCreditsOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := h.ledger.HasEnough(ctx, userID, input.Required)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to check message balance")
		return nil, huma.Error500InternalServerError("Failed to check credits")
	}
	out := &operation.CheckCreditsOutput{}
	out.Body.Required = input.Required
	out.Body.HasEnough = ok
	return out, nil
}

// ChargeCredits debits the caller only when the balance covers the amount.
func (h *CreditHandler) ChargeCredits(ctx context.Context, input *operation.ChargeCreditsInput) (*operation.ChargeCreditsOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	counter, err := h.ledger.Charge(ctx, userID, input.Body.Amount)
	if err != nil {
		return nil, h.ledgerError(err, userID, "Failed to charge credits")
	}
	return &operation.ChargeCreditsOutput{Body: toCounterDTO(counter)}, nil
}

// DecrementCredits debits the caller, clamping the balance at zero.
func (h *CreditHandler) DecrementCredits(ctx context.Context, input *operation.DecrementCreditsInput) (*operation.DecrementCreditsOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	counter, err := h.ledger.Decrement(ctx, userID, input.Body.Amount)
	if err != nil {
		return nil, h.ledgerError(err, userID, "Failed to decrement credits")
	}
	return &operation.DecrementCreditsOutput{Body: toCounterDTO(counter)}, nil
}

// GrantCredits credits any user. Routed behind the admin token.
func (h *CreditHandler) GrantCredits(ctx context.Context, input *operation.GrantCreditsInput) (*operation.GrantCreditsOutput, error) {
	reason := input.Body.Reason
	if reason == "" {
		reason = model.ReasonManualGrant
	}

	counter, err := h.ledger.Increment(ctx, input.Body.UserID, input.Body.Amount, reason)
	if err != nil {
		return nil, h.ledgerError(err, input.Body.UserID, "Failed to grant credits")
	}
	h.logger.Info().
		Str("user_id", input.Body.UserID).
		Int("amount", input.Body.Amount).
		Str("reason", reason).
		Msg("Granted credits")
	return &operation.GrantCreditsOutput{Body: toCounterDTO(counter)}, nil
}

func (h *CreditHandler) ledgerError(err error, userID, msg string) error {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return huma.Error400BadRequest(service.ErrInvalidAmount.Error())
	case errors.Is(err, service.ErrInsufficientCredits):
		return huma.NewError(http.StatusPaymentRequired, service.ErrInsufficientCredits.Error())
	default:
		h.logger.Error().Err(err).Str("user_id", userID).Msg(msg)
		return huma.Error500InternalServerError(msg)
	}
}
