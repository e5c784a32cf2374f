//go:generate go run go.uber.org/mock/mockgen -source=ledger_service.go -destination=../mocks/mock_ledger_service.go -package=mocks
package service

import (
	"context"
	"errors"
	"fmt"

	"tripbudget/internal/model"
	"tripbudget/internal/repository"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("amount must not be negative")
	// ErrInsufficientCredits is returned by Charge when the balance does not cover the amount.
	ErrInsufficientCredits = errors.New("insufficient_credits")
)

// LedgerService owns each user's remaining-message balance.
type LedgerService interface {
	// GetOrCreateCounter returns the user's counter, seeding it with the initial grant on first access.
	GetOrCreateCounter(ctx context.Context, userID string) (*model.MessageCounter, error)
	// Decrement debits amount, clamping the balance at zero.
	Decrement(ctx context.Context, userID string, amount int) (*model.MessageCounter, error)
	// Increment credits amount. reason labels the audit event only.
	Increment(ctx context.Context, userID string, amount int, reason string) (*model.MessageCounter, error)
	HasEnough(ctx context.Context, userID string, required int) (bool, error)
	// Charge debits amount only if the balance covers it.
	Charge(ctx context.Context, userID string, amount int) (*model.MessageCounter, error)
}

type ledgerService struct {
	counters     repository.CounterRepository
	events       CreditEventPublisher
	initialGrant int
	logger       zerolog.Logger
}

func NewLedgerService(counters repository.CounterRepository, events CreditEventPublisher, initialGrant int, logger zerolog.Logger) LedgerService {
	return &ledgerService{
		counters:     counters,
		events:       events,
		initialGrant: initialGrant,
		logger:       logger.With().Str("service", "LedgerService").Logger(),
	}
}

func (s *ledgerService) GetOrCreateCounter(ctx context.Context, userID string) (*model.MessageCounter, error) {
	c, created, err := s.counters.GetOrCreate(ctx, userID, s.initialGrant)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to get or create message counter")
		return nil, fmt.Errorf("get message counter for user %s: %w", userID, err)
	}
	if created {
		s.logger.Info().Str("user_id", userID).Int("initial_grant", s.initialGrant).Msg("Message counter created")
	}
	return c, nil
}

func (s *ledgerService) Decrement(ctx context.Context, userID string, amount int) (*model.MessageCounter, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	adj, err := s.counters.Adjust(ctx, userID, -amount, s.initialGrant)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Msg("Failed to decrement message count")
		return nil, fmt.Errorf("decrement messages for user %s: %w", userID, err)
	}
	if adj.Delta() != 0 {
		emitCreditEvent(ctx, s.events, s.logger, userID, adj, model.ReasonMessageSent)
	}
	return &adj.Counter, nil
}

func (s *ledgerService) Increment(ctx context.Context, userID string, amount int, reason string) (*model.MessageCounter, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	adj, err := s.counters.Adjust(ctx, userID, amount, s.initialGrant)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Str("reason", reason).Msg("Failed to increment message count")
		return nil, fmt.Errorf("increment messages for user %s: %w", userID, err)
	}
	if adj.Delta() != 0 {
		emitCreditEvent(ctx, s.events, s.logger, userID, adj, reason)
	}
	return &adj.Counter, nil
}

func (s *ledgerService) HasEnough(ctx context.Context, userID string, required int) (bool, error) {
	if required < 0 {
		return false, ErrInvalidAmount
	}
	c, err := s.GetOrCreateCounter(ctx, userID)
	if err != nil {
		return false, err
	}
	return c.MessageCount >= required, nil
}

func (s *ledgerService) Charge(ctx context.Context, userID string, amount int) (*model.MessageCounter, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	adj, err := s.counters.Charge(ctx, userID, amount, s.initialGrant)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			s.logger.Info().Str("user_id", userID).Int("amount", amount).Msg("Charge refused, insufficient credits")
			return nil, ErrInsufficientCredits
		}
		s.logger.Error().Err(err).Str("user_id", userID).Int("amount", amount).Msg("Failed to charge messages")
		return nil, fmt.Errorf("charge messages for user %s: %w", userID, err)
	}
	if adj.Delta() != 0 {
		emitCreditEvent(ctx, s.events, s.logger, userID, adj, model.ReasonMessageSent)
	}
	return &adj.Counter, nil
}
