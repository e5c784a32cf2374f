package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tripbudget/internal/mocks"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreditEventPublisher_Publish(t *testing.T) {
	event := model.CreditEvent{
		ID:           "evt-1",
		UserID:       "alice",
		Delta:        25,
		BalanceAfter: 47,
		Reason:       model.ReasonReferralSent,
		OccurredAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("should publish the event as JSON with routing attributes", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		pub := mocks.NewMockPublisher(ctrl)
		svc := service.NewCreditEventPublisher(pub, "credit-events", zerolog.Nop())

		pub.EXPECT().
			Publish(gomock.Any(), "credit-events", gomock.Any(), map[string]string{"reason": "referral_sent", "user_id": "alice"}).
			DoAndReturn(func(_ context.Context, _ string, payload []byte, _ map[string]string) (string, error) {
				var got model.CreditEvent
				req.NoError(json.Unmarshal(payload, &got))
				req.Equal(event, got)
				return "msg-1", nil
			})

		req.NoError(svc.Publish(context.Background(), event))
	})

	t.Run("should wrap publish failures", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		pub := mocks.NewMockPublisher(ctrl)
		svc := service.NewCreditEventPublisher(pub, "credit-events", zerolog.Nop())
		pubErr := errors.New("topic not found")

		pub.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", pubErr)

		err := svc.Publish(context.Background(), event)

		req.ErrorIs(err, pubErr)
	})
}
