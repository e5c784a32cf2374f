package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/mocks"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func pushRequest(data string, attrs map[string]string) *dto.PubSubPushRequest {
	return &dto.PubSubPushRequest{
		Subscription: "projects/p/subscriptions/credit-events-dlq-sub",
		Message: dto.PubSubMessage{
			Data:       data,
			MessageID:  "m-1",
			Attributes: attrs,
		},
	}
}

func TestDLQService_ProcessAndSave(t *testing.T) {
	ctx := context.Background()

	t.Run("should store a credit event with its user", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDLQRepository(ctrl)
		svc := service.NewDLQService(repo, zerolog.Nop())
		payload := `{"id":"e1","user_id":"alice","delta":-1,"balance_after":24,"reason":"message_sent"}`

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.DeadLetterMessage) error {
				req.Equal("m-1", m.MessageID)
				req.NotNil(m.UserID)
				req.Equal("alice", *m.UserID)
				req.JSONEq(payload, string(m.Payload))
				req.Equal("unprocessed", m.Status)
				req.JSONEq(`{"reason":"message_sent"}`, string(m.Attributes))
				return nil
			})

		err := svc.ProcessAndSave(ctx, pushRequest(base64.StdEncoding.EncodeToString([]byte(payload)), map[string]string{"reason": "message_sent"}))

		req.NoError(err)
	})

	t.Run("should wrap a non JSON payload as a JSON string", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDLQRepository(ctrl)
		svc := service.NewDLQService(repo, zerolog.Nop())

		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.DeadLetterMessage) error {
				req.Equal(`"not base64!"`, string(m.Payload))
				req.NotNil(m.UserID)
				req.Equal("bob", *m.UserID)
				return nil
			})

		err := svc.ProcessAndSave(ctx, pushRequest("not base64!", map[string]string{"user_id": "bob"}))

		req.NoError(err)
	})

	t.Run("should return repository errors", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockDLQRepository(ctrl)
		svc := service.NewDLQService(repo, zerolog.Nop())
		dbErr := errors.New("insert failed")

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dbErr)

		err := svc.ProcessAndSave(ctx, pushRequest(base64.StdEncoding.EncodeToString([]byte(`{}`)), nil))

		req.ErrorIs(err, dbErr)
	})
}
