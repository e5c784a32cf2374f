//go:generate go run go.uber.org/mock/mockgen -source=stripe_service.go -destination=../mocks/mock_checkout_service.go -package=mocks
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"tripbudget/internal/config"
	"tripbudget/internal/model"
	"tripbudget/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// ErrUnknownPack is returned for a credit pack name that is not configured.
var ErrUnknownPack = errors.New("unknown credit pack")

const maxWebhookBodyBytes = 65536

// CreditPack is a one-time purchasable bundle of messages.
type CreditPack struct {
	Name    string `json:"name"`
	PriceID string `json:"-"`
	Credits int    `json:"credits"`
}

// CheckoutService starts Stripe checkouts for credit packs.
type CheckoutService interface {
	Packs() []CreditPack
	CreateCheckoutSession(ctx context.Context, userID, pack string) (string, error)
	// ListPurchases returns the user's credited purchases, newest first.
	ListPurchases(ctx context.Context, userID string) ([]model.CreditPurchase, error)
}

// StripeService manages Stripe integration
type StripeService struct {
	cfg        *config.Config
	purchases  repository.PurchaseRepository
	events     CreditEventPublisher
	packs      map[string]CreditPack
	newSession func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	logger     zerolog.Logger
}

// NewStripeService initializes Stripe key and returns service with a scoped logger
func NewStripeService(cfg *config.Config, purchases repository.PurchaseRepository, events CreditEventPublisher, logger zerolog.Logger) *StripeService {
	stripe.Key = cfg.StripeSecretKey
	lg := logger.With().Str("service", "StripeService").Logger()
	packs := map[string]CreditPack{
		"small": {Name: "small", PriceID: cfg.StripePricePackSmall, Credits: cfg.CreditPackSmall},
		"large": {Name: "large", PriceID: cfg.StripePricePackLarge, Credits: cfg.CreditPackLarge},
	}
	return &StripeService{
		cfg:        cfg,
		purchases:  purchases,
		events:     events,
		packs:      packs,
		newSession: checkoutsession.New,
		logger:     lg,
	}
}

// Packs lists the packs that have a Stripe price configured.
func (s *StripeService) Packs() []CreditPack {
	var out []CreditPack
	for _, name := range []string{"small", "large"} {
		if p := s.packs[name]; p.PriceID != "" && p.Credits > 0 {
			out = append(out, p)
		}
	}
	return out
}

// CreateCheckoutSession creates a one-time payment Checkout session for a pack.
// The user and credit amount travel in the session metadata and come back on the webhook.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, userID, pack string) (string, error) {
	p, ok := s.packs[pack]
	if !ok || p.PriceID == "" || p.Credits <= 0 {
		return "", ErrUnknownPack
	}
	metadata := map[string]string{
		"user_id": userID,
		"pack":    p.Name,
		"credits": strconv.Itoa(p.Credits),
	}
	params := &stripe.CheckoutSessionParams{
		ClientReferenceID: stripe.String(userID),
		LineItems:         []*stripe.CheckoutSessionLineItemParams{{Price: stripe.String(p.PriceID), Quantity: stripe.Int64(1)}},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.StripeCheckoutReturnURL + "?status=success"),
		CancelURL:         stripe.String(s.cfg.StripeCheckoutReturnURL + "?status=cancel"),
		Metadata:          metadata,
	}
	sess, err := s.newSession(params)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("pack", pack).Msg("Failed to create Stripe checkout session")
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	s.logger.Info().Str("user_id", userID).Str("pack", pack).Str("session_id", sess.ID).Msg("Checkout session created")
	return sess.URL, nil
}

func (s *StripeService) ListPurchases(ctx context.Context, userID string) ([]model.CreditPurchase, error) {
	purchases, err := s.purchases.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list purchases")
		return nil, fmt.Errorf("list purchases for user %s: %w", userID, err)
	}
	return purchases, nil
}

// HandleWebhook processes Stripe webhook events
func (s *StripeService) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read Stripe webhook payload")
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}
	sig := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, s.cfg.StripeWebhookSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("Signature verification failed for Stripe webhook")
		http.Error(w, "signature verification failed", http.StatusBadRequest)
		return
	}
	s.logger.Info().Str("event_type", string(event.Type)).Str("event_id", event.ID).Msg("Stripe webhook received")

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			s.logger.Error().Err(err).Msg("Invalid checkout.session data")
			http.Error(w, "invalid checkout.session data", http.StatusBadRequest)
			return
		}
		status, err := s.creditCheckoutSession(r.Context(), &cs)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
	default:
		s.logger.Debug().Str("event_type", string(event.Type)).Msg("Unhandled Stripe webhook event")
	}
	w.WriteHeader(http.StatusOK)
}

// creditCheckoutSession applies a paid session once. A replayed session is
// acknowledged without crediting again.
func (s *StripeService) creditCheckoutSession(ctx context.Context, cs *stripe.CheckoutSession) (int, error) {
	if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		s.logger.Info().Str("session_id", cs.ID).Str("payment_status", string(cs.PaymentStatus)).Msg("Checkout session not paid yet, skipping")
		return http.StatusOK, nil
	}
	userID := cs.Metadata["user_id"]
	if userID == "" {
		s.logger.Error().Str("session_id", cs.ID).Msg("Missing user_id in checkout session metadata")
		return http.StatusBadRequest, errors.New("missing user_id in metadata")
	}
	credits, err := strconv.Atoi(cs.Metadata["credits"])
	if err != nil || credits <= 0 {
		s.logger.Error().Str("session_id", cs.ID).Str("credits", cs.Metadata["credits"]).Msg("Invalid credits in checkout session metadata")
		return http.StatusBadRequest, errors.New("invalid credits in metadata")
	}

	purchase := &model.CreditPurchase{UserID: userID, StripeSessionID: cs.ID, Credits: credits}
	adj, err := s.purchases.Apply(ctx, purchase, s.cfg.InitialMessageGrant)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseAlreadyApplied) {
			s.logger.Info().Str("session_id", cs.ID).Str("user_id", userID).Msg("Checkout session already credited")
			return http.StatusOK, nil
		}
		s.logger.Error().Err(err).Str("session_id", cs.ID).Str("user_id", userID).Msg("Failed to credit purchase")
		return http.StatusInternalServerError, errors.New("failed to credit purchase")
	}
	emitCreditEvent(ctx, s.events, s.logger, userID, adj, model.ReasonPurchase)
	return http.StatusOK, nil
}
