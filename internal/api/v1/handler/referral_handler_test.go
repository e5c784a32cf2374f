package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/api/v1/handler"
	"tripbudget/internal/api/v1/operation"
	"tripbudget/internal/mocks"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReferralHandler_RedeemReferral(t *testing.T) {
	t.Run("should return the redeemer's new balance", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Redeem(gomock.Any(), "AB12CD", "bob").Return(&model.Redemption{
			Referral: model.Referral{ReferrerID: "alice", ReferralCode: "AB12CD", IsUsed: true},
			Referrer: model.CounterAdjustment{Counter: model.MessageCounter{UserID: "alice", MessageCount: 47}},
			Referee:  model.CounterAdjustment{Counter: model.MessageCounter{UserID: "bob", MessageCount: 50}},
		}, nil)

		out, err := h.RedeemReferral(authed("bob"), &operation.RedeemReferralInput{Body: dto.RedeemReferralRequestDTO{Code: "AB12CD"}})

		req.NoError(err)
		req.True(out.Body.Redeemed)
		req.Equal(50, out.Body.Balance)
	})

	t.Run("should answer 409 for an invalid or used code", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Redeem(gomock.Any(), "USED01", "bob").Return(nil, service.ErrReferralInvalid)

		_, err := h.RedeemReferral(authed("bob"), &operation.RedeemReferralInput{Body: dto.RedeemReferralRequestDTO{Code: "USED01"}})

		requireStatus(t, err, http.StatusConflict)
		req.Contains(err.Error(), "referral code invalid or already used")
	})

	t.Run("should answer 400 for a self referral", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Redeem(gomock.Any(), "AB12CD", "alice").Return(nil, service.ErrSelfReferral)

		_, err := h.RedeemReferral(authed("alice"), &operation.RedeemReferralInput{Body: dto.RedeemReferralRequestDTO{Code: "AB12CD"}})

		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("should answer 500 on datastore failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Redeem(gomock.Any(), "AB12CD", "bob").Return(nil, errors.New("deadlock detected"))

		_, err := h.RedeemReferral(authed("bob"), &operation.RedeemReferralInput{Body: dto.RedeemReferralRequestDTO{Code: "AB12CD"}})

		requireStatus(t, err, http.StatusInternalServerError)
	})
}

func TestReferralHandler_CreateReferral(t *testing.T) {
	t.Run("should issue a code for the caller", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())
		email := "friend@example.com"

		referrals.EXPECT().Issue(gomock.Any(), "alice", &email).
			Return(&model.Referral{ID: "ref-1", ReferrerID: "alice", ReferralCode: "AB12CD", RefereeEmail: &email}, nil)

		out, err := h.CreateReferral(authed("alice"), &operation.CreateReferralInput{Body: &dto.CreateReferralRequestDTO{RefereeEmail: &email}})

		req.NoError(err)
		req.Equal("AB12CD", out.Body.ReferralCode)
		req.False(out.Body.IsUsed)
	})

	t.Run("should issue a code without an invite when the body is absent", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Issue(gomock.Any(), "alice", gomock.Nil()).
			Return(&model.Referral{ID: "ref-1", ReferrerID: "alice", ReferralCode: "AB12CD"}, nil)

		out, err := h.CreateReferral(authed("alice"), &operation.CreateReferralInput{})

		req.NoError(err)
		req.Equal("AB12CD", out.Body.ReferralCode)
		req.Nil(out.Body.RefereeEmail)
	})

	t.Run("should answer 400 for a malformed email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		referrals := mocks.NewMockReferralService(ctrl)
		h := handler.NewReferralHandler(referrals, zerolog.Nop())

		referrals.EXPECT().Issue(gomock.Any(), "alice", gomock.Any()).Return(nil, service.ErrInvalidEmail)

		_, err := h.CreateReferral(authed("alice"), &operation.CreateReferralInput{})

		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestReferralHandler_ListReferrals(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	referrals := mocks.NewMockReferralService(ctrl)
	h := handler.NewReferralHandler(referrals, zerolog.Nop())
	usedAt := time.Now()

	referrals.EXPECT().List(gomock.Any(), "alice", 10, 0).Return([]model.Referral{
		{ID: "ref-2", ReferralCode: "ZZ99YY"},
		{ID: "ref-1", ReferralCode: "AB12CD", IsUsed: true, UsedAt: &usedAt},
	}, nil)
	referrals.EXPECT().Stats(gomock.Any(), "alice").
		Return(&model.ReferralStats{Issued: 2, Redeemed: 1, Pending: 1, CreditsEarned: 25}, nil)

	out, err := h.ListReferrals(authed("alice"), &operation.ListReferralsInput{Limit: 10})

	req.NoError(err)
	req.Len(out.Body.Referrals, 2)
	req.Equal("ZZ99YY", out.Body.Referrals[0].ReferralCode)
	req.True(out.Body.Referrals[1].IsUsed)
	req.Equal(dto.ReferralStatsDTO{Issued: 2, Redeemed: 1, Pending: 1, CreditsEarned: 25}, out.Body.Stats)
}
