package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/api/v1/operation"
	"tripbudget/internal/model"
	"tripbudget/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

type DLQHandler struct {
	service service.DLQService
	logger  zerolog.Logger
}

func NewDLQHandler(s service.DLQService, l zerolog.Logger) *DLQHandler {
	return &DLQHandler{service: s, logger: l}
}

// deadCreditEvent decodes the credit event carried by a push message. ok is
// false when the payload is not a credit event.
func deadCreditEvent(msg dto.PubSubMessage) (model.CreditEvent, bool) {
	var event model.CreditEvent
	raw, err := base64.StdEncoding.DecodeString(msg.Data)
	if err != nil {
		return event, false
	}
	if err := json.Unmarshal(raw, &event); err != nil || event.UserID == "" {
		return event, false
	}
	return event, true
}

// RecordDLQ stores a credit event that Pub/Sub gave up delivering. The push
// is always acknowledged once it carries a message id.
func (h *DLQHandler) RecordDLQ(ctx context.Context, input *operation.RecordDLQInput) (*operation.RecordDLQOutput, error) {
	msg := &input.Body.Message
	if msg.MessageID == "" {
		msg.MessageID = msg.MessageIDSnake
	}
	if msg.MessageID == "" {
		return nil, huma.Error400BadRequest("Invalid Pub/Sub message format: missing message ID")
	}

	logger := h.logger.With().
		Str("message_id", msg.MessageID).
		Str("subscription", input.Body.Subscription).
		Logger()
	if input.Body.DeliveryAttempt != nil {
		logger = logger.With().Int("delivery_attempt", *input.Body.DeliveryAttempt).Logger()
	}
	if event, ok := deadCreditEvent(*msg); ok {
		logger = logger.With().
			Str("user_id", event.UserID).
			Str("reason", event.Reason).
			Int("delta", event.Delta).
			Int("balance_after", event.BalanceAfter).
			Logger()
	} else if id := msg.Attributes["user_id"]; id != "" {
		logger = logger.With().Str("user_id", id).Logger()
	}
	logger.Warn().Msg("Credit event dead-lettered")

	if err := h.service.ProcessAndSave(ctx, &input.Body); err != nil {
		logger.Error().Err(err).Msg("Failed to save dead-lettered credit event")
	}
	return &operation.RecordDLQOutput{}, nil
}
