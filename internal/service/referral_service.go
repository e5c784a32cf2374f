//go:generate go run go.uber.org/mock/mockgen -source=referral_service.go -destination=../mocks/mock_referral_service.go -package=mocks
package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"tripbudget/internal/model"
	"tripbudget/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var (
	// ErrReferralInvalid covers unknown codes and codes already redeemed.
	ErrReferralInvalid = errors.New("referral code invalid or already used")
	ErrSelfReferral    = errors.New("cannot redeem your own referral code")
	// ErrCodeExhausted is returned when every generated code collided with an existing one.
	ErrCodeExhausted = errors.New("could not generate a unique referral code")
	ErrInvalidEmail  = errors.New("invalid referee email")
)

const (
	referralCodeLength   = 6
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// JobQueue enqueues background jobs. Satisfied by *pgmq.Client.
type JobQueue interface {
	Send(ctx context.Context, queue string, payload []byte) (int64, error)
}

// ReferralService issues and redeems single-use invitation codes.
type ReferralService interface {
	Issue(ctx context.Context, referrerID string, refereeEmail *string) (*model.Referral, error)
	// Redeem consumes code and credits the bonus to both the issuer and redeemerID.
	Redeem(ctx context.Context, code, redeemerID string) (*model.Redemption, error)
	List(ctx context.Context, referrerID string, limit, offset int) ([]model.Referral, error)
	Stats(ctx context.Context, referrerID string) (*model.ReferralStats, error)
}

// ReferralOptions carries the tunables of the referral program.
type ReferralOptions struct {
	Bonus        int
	InitialGrant int
	CodeAttempts int
	InviteQueue  string
}

type referralService struct {
	referrals repository.ReferralRepository
	events    CreditEventPublisher
	queue     JobQueue
	validate  *validator.Validate
	opts      ReferralOptions
	newCode   func() (string, error)
	logger    zerolog.Logger
}

func NewReferralService(
	referrals repository.ReferralRepository,
	events CreditEventPublisher,
	queue JobQueue,
	validate *validator.Validate,
	opts ReferralOptions,
	logger zerolog.Logger,
) ReferralService {
	if opts.CodeAttempts < 1 {
		opts.CodeAttempts = 1
	}
	return &referralService{
		referrals: referrals,
		events:    events,
		queue:     queue,
		validate:  validate,
		opts:      opts,
		newCode:   GenerateReferralCode,
		logger:    logger.With().Str("service", "ReferralService").Logger(),
	}
}

// GenerateReferralCode draws a code of six symbols from A-Z0-9.
func GenerateReferralCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(referralCodeAlphabet)))
	var b strings.Builder
	b.Grow(referralCodeLength)
	for range referralCodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		b.WriteByte(referralCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeReferralCode trims and upper-cases user input.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *referralService) Issue(ctx context.Context, referrerID string, refereeEmail *string) (*model.Referral, error) {
	if refereeEmail != nil {
		email := strings.TrimSpace(*refereeEmail)
		if email == "" {
			refereeEmail = nil
		} else {
			if err := s.validate.Var(email, "email"); err != nil {
				return nil, ErrInvalidEmail
			}
			refereeEmail = &email
		}
	}

	var ref *model.Referral
	for attempt := 1; attempt <= s.opts.CodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generating referral code: %w", err)
		}
		candidate := &model.Referral{ReferrerID: referrerID, RefereeEmail: refereeEmail, ReferralCode: code}
		err = s.referrals.Create(ctx, candidate)
		if err == nil {
			ref = candidate
			break
		}
		if !errors.Is(err, repository.ErrDuplicateCode) {
			s.logger.Error().Err(err).Str("user_id", referrerID).Msg("Failed to create referral")
			return nil, fmt.Errorf("issue referral for user %s: %w", referrerID, err)
		}
		s.logger.Warn().Str("user_id", referrerID).Int("attempt", attempt).Msg("Referral code collision, regenerating")
	}
	if ref == nil {
		s.logger.Error().Str("user_id", referrerID).Int("attempts", s.opts.CodeAttempts).Msg("Exhausted referral code attempts")
		return nil, ErrCodeExhausted
	}

	s.logger.Info().Str("user_id", referrerID).Str("referral_code", ref.ReferralCode).Msg("Referral issued")
	if ref.RefereeEmail != nil {
		s.enqueueInvite(ctx, ref)
	}
	return ref, nil
}

// enqueueInvite is best effort: the code is valid whether or not the mail goes out.
func (s *referralService) enqueueInvite(ctx context.Context, ref *model.Referral) {
	if s.queue == nil || s.opts.InviteQueue == "" {
		return
	}
	payload, err := json.Marshal(model.InviteJob{
		ReferralID:   ref.ID,
		ReferrerID:   ref.ReferrerID,
		RefereeEmail: *ref.RefereeEmail,
		ReferralCode: ref.ReferralCode,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("referral_code", ref.ReferralCode).Msg("Failed to marshal invite job")
		return
	}
	msgID, err := s.queue.Send(ctx, s.opts.InviteQueue, payload)
	if err != nil {
		s.logger.Error().Err(err).Str("referral_code", ref.ReferralCode).Msg("Failed to enqueue invite job")
		return
	}
	s.logger.Debug().Int64("msg_id", msgID).Str("referral_code", ref.ReferralCode).Msg("Invite job enqueued")
}

func (s *referralService) Redeem(ctx context.Context, code, redeemerID string) (*model.Redemption, error) {
	code = NormalizeReferralCode(code)
	if code == "" {
		return nil, ErrReferralInvalid
	}

	red, err := s.referrals.Redeem(ctx, code, redeemerID, s.opts.Bonus, s.opts.InitialGrant)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReferralNotRedeemable):
			s.logger.Info().Str("user_id", redeemerID).Str("referral_code", code).Msg("Referral code invalid or already used")
			return nil, ErrReferralInvalid
		case errors.Is(err, repository.ErrSelfRedemption):
			s.logger.Info().Str("user_id", redeemerID).Str("referral_code", code).Msg("Self referral rejected")
			return nil, ErrSelfReferral
		default:
			s.logger.Error().Err(err).Str("user_id", redeemerID).Str("referral_code", code).Msg("Failed to redeem referral")
			return nil, fmt.Errorf("redeem referral for user %s: %w", redeemerID, err)
		}
	}

	s.logger.Info().
		Str("referral_code", code).
		Str("referrer_id", red.Referral.ReferrerID).
		Str("user_id", redeemerID).
		Msg("Referral redeemed")
	emitCreditEvent(ctx, s.events, s.logger, red.Referral.ReferrerID, &red.Referrer, model.ReasonReferralSent)
	emitCreditEvent(ctx, s.events, s.logger, redeemerID, &red.Referee, model.ReasonReferralUsed)
	return red, nil
}

func (s *referralService) List(ctx context.Context, referrerID string, limit, offset int) ([]model.Referral, error) {
	refs, err := s.referrals.ListByReferrer(ctx, referrerID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", referrerID).Msg("Failed to list referrals")
		return nil, fmt.Errorf("list referrals for user %s: %w", referrerID, err)
	}
	return refs, nil
}

func (s *referralService) Stats(ctx context.Context, referrerID string) (*model.ReferralStats, error) {
	stats, err := s.referrals.StatsByReferrer(ctx, referrerID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", referrerID).Msg("Failed to load referral stats")
		return nil, fmt.Errorf("referral stats for user %s: %w", referrerID, err)
	}
	stats.CreditsEarned = stats.Redeemed * s.opts.Bonus
	return stats, nil
}
