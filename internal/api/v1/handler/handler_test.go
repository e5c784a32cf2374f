package handler_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

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

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestPurchaseHandler(t *testing.T) {
	t.Run("should list the configured packs", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		checkout := mocks.NewMockCheckoutService(ctrl)
		h := handler.NewPurchaseHandler(checkout, zerolog.Nop())

		checkout.EXPECT().Packs().Return([]service.CreditPack{{Name: "small", PriceID: "price_small", Credits: 100}})

		out, err := h.ListPacks(context.Background(), &operation.ListPacksInput{})

		req.NoError(err)
		req.Equal([]dto.CreditPackDTO{{Name: "small", Credits: 100}}, out.Body)
	})

	t.Run("should return the checkout url", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		checkout := mocks.NewMockCheckoutService(ctrl)
		h := handler.NewPurchaseHandler(checkout, zerolog.Nop())

		checkout.EXPECT().CreateCheckoutSession(gomock.Any(), "alice", "small").Return("https://checkout.stripe.com/c/pay/cs_test", nil)

		out, err := h.CreateCheckout(authed("alice"), &operation.CreateCheckoutInput{Body: dto.CheckoutRequestDTO{Pack: "small"}})

		req.NoError(err)
		req.Equal("https://checkout.stripe.com/c/pay/cs_test", out.Body.URL)
	})

	t.Run("should list the caller's purchases", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		checkout := mocks.NewMockCheckoutService(ctrl)
		h := handler.NewPurchaseHandler(checkout, zerolog.Nop())

		checkout.EXPECT().ListPurchases(gomock.Any(), "alice").
			Return([]model.CreditPurchase{{ID: "p-1", UserID: "alice", StripeSessionID: "cs_test_1", Credits: 100}}, nil)

		out, err := h.ListPurchases(authed("alice"), &operation.ListPurchasesInput{})

		req.NoError(err)
		req.Len(out.Body, 1)
		req.Equal("cs_test_1", out.Body[0].StripeSessionID)
		req.Equal(100, out.Body[0].Credits)
	})

	t.Run("should answer 500 when purchases cannot be loaded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checkout := mocks.NewMockCheckoutService(ctrl)
		h := handler.NewPurchaseHandler(checkout, zerolog.Nop())

		checkout.EXPECT().ListPurchases(gomock.Any(), "alice").Return(nil, errors.New("db down"))

		_, err := h.ListPurchases(authed("alice"), &operation.ListPurchasesInput{})

		requireStatus(t, err, http.StatusInternalServerError)
	})

	t.Run("should answer 400 for an unknown pack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checkout := mocks.NewMockCheckoutService(ctrl)
		h := handler.NewPurchaseHandler(checkout, zerolog.Nop())

		checkout.EXPECT().CreateCheckoutSession(gomock.Any(), "alice", "huge").Return("", service.ErrUnknownPack)

		_, err := h.CreateCheckout(authed("alice"), &operation.CreateCheckoutInput{Body: dto.CheckoutRequestDTO{Pack: "huge"}})

		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestDLQHandler(t *testing.T) {
	t.Run("should reject a push without a message id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := handler.NewDLQHandler(mocks.NewMockDLQService(ctrl), zerolog.Nop())

		_, err := h.RecordDLQ(context.Background(), &operation.RecordDLQInput{})

		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("should acknowledge even when saving fails", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		dlq := mocks.NewMockDLQService(ctrl)
		h := handler.NewDLQHandler(dlq, zerolog.Nop())

		dlq.EXPECT().ProcessAndSave(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		out, err := h.RecordDLQ(context.Background(), &operation.RecordDLQInput{
			Body: dto.PubSubPushRequest{Message: dto.PubSubMessage{MessageID: "m-1"}},
		})

		req.NoError(err)
		req.NotNil(out)
	})

	t.Run("should log the owner and reason of a dead credit event", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		dlq := mocks.NewMockDLQService(ctrl)
		var logs bytes.Buffer
		h := handler.NewDLQHandler(dlq, zerolog.New(&logs))
		data := base64.StdEncoding.EncodeToString([]byte(`{"user_id":"alice","delta":-1,"balance_after":24,"reason":"message_sent"}`))
		attempt := 5

		dlq.EXPECT().
			ProcessAndSave(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *dto.PubSubPushRequest) error {
				req.Equal("m-2", p.Message.MessageID)
				return nil
			})

		_, err := h.RecordDLQ(context.Background(), &operation.RecordDLQInput{
			Body: dto.PubSubPushRequest{
				Message:         dto.PubSubMessage{MessageIDSnake: "m-2", Data: data},
				Subscription:    "projects/p/subscriptions/credit-events-dlq-push",
				DeliveryAttempt: &attempt,
			},
		})

		req.NoError(err)
		req.Contains(logs.String(), `"user_id":"alice"`)
		req.Contains(logs.String(), `"reason":"message_sent"`)
		req.Contains(logs.String(), `"delivery_attempt":5`)
	})
}

func TestHealthHandler(t *testing.T) {
	t.Run("should report ok when the database answers", func(t *testing.T) {
		req := require.New(t)
		out, err := handler.NewHealthHandler(pinger{}, zerolog.Nop()).Health(context.Background(), &operation.HealthInput{})
		req.NoError(err)
		req.Equal("ok", out.Body.Status)
	})

	t.Run("should answer 503 when the database is down", func(t *testing.T) {
		_, err := handler.NewHealthHandler(pinger{err: errors.New("refused")}, zerolog.Nop()).Health(context.Background(), &operation.HealthInput{})
		requireStatus(t, err, http.StatusServiceUnavailable)
	})
}
