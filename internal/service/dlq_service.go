//go:generate go run go.uber.org/mock/mockgen -source=dlq_service.go -destination=../mocks/mock_dlq_service.go -package=mocks
package service

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/model"
	"tripbudget/internal/repository"

	"github.com/rs/zerolog"
)

// DLQService defines the interface for Dead Letter Queue operations.
type DLQService interface {
	ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error
}

type dlqService struct {
	repo      repository.DLQRepository
	dlqLogger zerolog.Logger
}

// NewDLQService creates a new DLQService.
func NewDLQService(repo repository.DLQRepository, logger zerolog.Logger) DLQService {
	return &dlqService{
		repo:      repo,
		dlqLogger: logger.With().Str("service", "DLQService").Logger(),
	}
}

// ProcessAndSave stores a dead-lettered credit event pushed back by Pub/Sub.
// The owning user is recorded when the payload decodes as a CreditEvent.
func (s *dlqService) ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error {
	decodedPayload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		s.dlqLogger.Warn().Err(err).Str("message_id", req.Message.MessageID).Msg("Failed to decode DLQ message payload, saving as is")
		decodedPayload = []byte(req.Message.Data)
	}

	var userID *string
	var event model.CreditEvent
	if json.Valid(decodedPayload) {
		if err := json.Unmarshal(decodedPayload, &event); err == nil && event.UserID != "" {
			userID = &event.UserID
		}
	} else {
		// payload is stored as JSONB
		decodedPayload, _ = json.Marshal(string(decodedPayload))
	}
	if userID == nil {
		if id := req.Message.Attributes["user_id"]; id != "" {
			userID = &id
		}
	}

	var attributesJSON []byte
	if len(req.Message.Attributes) > 0 {
		attributesJSON, err = json.Marshal(req.Message.Attributes)
		if err != nil {
			s.dlqLogger.Warn().Err(err).Str("message_id", req.Message.MessageID).Msg("Failed to marshal DLQ message attributes")
		}
	}

	dbMessage := &model.DeadLetterMessage{
		SubscriptionName: req.Subscription,
		MessageID:        req.Message.MessageID,
		UserID:           userID,
		Payload:          decodedPayload,
		Attributes:       attributesJSON,
		Status:           "unprocessed",
	}

	if err := s.repo.Create(ctx, dbMessage); err != nil {
		s.dlqLogger.Error().Err(err).Str("subscription", dbMessage.SubscriptionName).Msg("Failed to save DLQ message")
		return err
	}
	return nil
}
