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

type ReferralHandler struct {
	referrals service.ReferralService
	logger    zerolog.Logger
}

func NewReferralHandler(referrals service.ReferralService, logger zerolog.Logger) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, logger: logger}
}

func toReferralDTO(r model.Referral, _ int) dto.ReferralResponseDTO {
	return dto.ReferralResponseDTO{
		ID:           r.ID,
		ReferralCode: r.ReferralCode,
		RefereeEmail: r.RefereeEmail,
		IsUsed:       r.IsUsed,
		UsedAt:       r.UsedAt,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateReferral issues a new code for the caller.
func (h *ReferralHandler) CreateReferral(ctx context.Context, input *operation.CreateReferralInput) (*operation.CreateReferralOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var email *string
	if input.Body != nil {
		email = input.Body.RefereeEmail
	}

	ref, err := h.referrals.Issue(ctx, userID, email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return nil, huma.Error400BadRequest(service.ErrInvalidEmail.Error())
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to issue referral")
		return nil, huma.Error500InternalServerError("Failed to create referral")
	}
	return &operation.CreateReferralOutput{Body: toReferralDTO(*ref, 0)}, nil
}

// ListReferrals returns a page of the caller's codes with aggregate stats.
func (h *ReferralHandler) ListReferrals(ctx context.Context, input *operation.ListReferralsInput) (*operation.ListReferralsOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	refs, err := h.referrals.List(ctx, userID, input.Limit, input.Offset)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list referrals")
		return nil, huma.Error500InternalServerError("Failed to list referrals")
	}
	stats, err := h.referrals.Stats(ctx, userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load referral stats")
		return nil, huma.Error500InternalServerError("Failed to list referrals")
	}

	return &operation.ListReferralsOutput{
		Body: dto.ReferralListResponseDTO{
			Referrals: lo.Map(refs, toReferralDTO),
			Stats: dto.ReferralStatsDTO{
				Issued:        stats.Issued,
				Redeemed:      stats.Redeemed,
				Pending:       stats.Pending,
				CreditsEarned: stats.CreditsEarned,
			},
		},
	}, nil
}

// RedeemReferral consumes a code on behalf of the caller.
func (h *ReferralHandler) RedeemReferral(ctx context.Context, input *operation.RedeemReferralInput) (*operation.RedeemReferralOutput, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	red, err := h.referrals.Redeem(ctx, input.Body.Code, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReferralInvalid):
			return nil, huma.Error409Conflict(service.ErrReferralInvalid.Error())
		case errors.Is(err, service.ErrSelfReferral):
			return nil, huma.Error400BadRequest(service.ErrSelfReferral.Error())
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to redeem referral")
			return nil, huma.Error500InternalServerError("Failed to redeem referral")
		}
	}

	return &operation.RedeemReferralOutput{
		Body: dto.RedeemReferralResponseDTO{
			Redeemed: true,
			Balance:  red.Referee.Counter.MessageCount,
		},
	}, nil
}
