//go:generate go run go.uber.org/mock/mockgen -source=credit_event_publisher.go -destination=../mocks/mock_credit_event_publisher.go -package=mocks
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripbudget/internal/model"
	"tripbudget/internal/pubsub"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreditEventPublisher emits an audit event for every balance change.
type CreditEventPublisher interface {
	Publish(ctx context.Context, event model.CreditEvent) error
}

type creditEventPublisher struct {
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

func NewCreditEventPublisher(publisher pubsub.Publisher, topic string, logger zerolog.Logger) CreditEventPublisher {
	return &creditEventPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "CreditEventPublisher").Logger(),
	}
}

func (p *creditEventPublisher) Publish(ctx context.Context, event model.CreditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling credit event %s: %w", event.ID, err)
	}
	attrs := map[string]string{
		"reason":  event.Reason,
		"user_id": event.UserID,
	}
	msgID, err := p.publisher.Publish(ctx, p.topic, payload, attrs)
	if err != nil {
		return fmt.Errorf("publishing credit event for user %s: %w", event.UserID, err)
	}
	p.logger.Debug().Str("event_id", event.ID).Str("message_id", msgID).Msg("Credit event published")
	return nil
}

// newCreditEvent describes an applied adjustment. Delta is the effective
// change, which is smaller than requested when a debit was clamped.
func newCreditEvent(userID string, adj *model.CounterAdjustment, reason string) model.CreditEvent {
	return model.CreditEvent{
		ID:           uuid.NewString(),
		UserID:       userID,
		Delta:        adj.Delta(),
		BalanceAfter: adj.Counter.MessageCount,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
}

// emitCreditEvent publishes best effort: the balance change is already
// committed, so a publish failure is logged and swallowed.
func emitCreditEvent(ctx context.Context, events CreditEventPublisher, logger zerolog.Logger, userID string, adj *model.CounterAdjustment, reason string) {
	logger.Info().
		Str("user_id", userID).
		Str("reason", reason).
		Int("delta", adj.Delta()).
		Int("balance_after", adj.Counter.MessageCount).
		Msg("Message balance changed")
	if events == nil {
		return
	}
	if err := events.Publish(ctx, newCreditEvent(userID, adj, reason)); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Str("reason", reason).Msg("Failed to publish credit event")
	}
}
