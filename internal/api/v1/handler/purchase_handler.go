package handler

import (
	"context"
	"errors"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/api/v1/operation"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// PurchaseHandler sells credit packs through Stripe Checkout.
type PurchaseHandler struct {
	checkout service.CheckoutService
	logger   zerolog.Logger
}

func NewPurchaseHandler(checkout service.CheckoutService, logger zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{checkout: checkout, logger: logger}
}

func (h *PurchaseHandler) ListPacks(ctx context.Context, input *operation.ListPacksInput) (*operation.ListPacksOutput, error) {
	packs := lo.Map(h.checkout.Packs(), func(p service.CreditPack, _ int) dto.CreditPackDTO {
		return dto.CreditPackDTO{Name: p.Name, Credits: p.Credits}
	})
	return &operation.ListPacksOutput{Body: packs}, nil
}

func (h *PurchaseHandler) CreateCheckout(ctx context.Context, input *operation.CreateCheckoutInput) (*operation.CreateCheckoutOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	url, err := h.checkout.CreateCheckoutSession(ctx, userID, input.Body.Pack)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPack) {
			return nil, huma.Error400BadRequest(service.ErrUnknownPack.Error())
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create checkout session")
		return nil, huma.Error500InternalServerError("Failed to create checkout session")
	}
	return &operation.CreateCheckoutOutput{Body: dto.CheckoutResponseDTO{URL: url}}, nil
}

// ListPurchases returns the caller's purchase history.
func (h *PurchaseHandler) ListPurchases(ctx context.Context, input *operation.ListPurchasesInput) (*operation.ListPurchasesOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	purchases, err := h.checkout.ListPurchases(ctx, userID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list purchases")
	}
	return &operation.ListPurchasesOutput{
		Body: lo.Map(purchases, func(p model.CreditPurchase, _ int) dto.PurchaseDTO {
			return dto.PurchaseDTO{ID: p.ID, StripeSessionID: p.StripeSessionID, Credits: p.Credits, CreatedAt: p.CreatedAt}
		}),
	}, nil
}
