package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Local & Github Secrets (Fill up for local development)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`
	Environment        string `envconfig:"ENV" default:"development"`
	Port               string `envconfig:"PORT" default:"8080"`
	AdminAPIToken      string `envconfig:"ADMIN_API_TOKEN"`
	AppBaseURL         string `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	APIBaseURL         string `envconfig:"API_BASE_URL" default:"http://localhost:8080/v1"`

	// Credit ledger & referrals
	InitialMessageGrant  int `envconfig:"INITIAL_MESSAGE_GRANT" default:"25"`
	ReferralBonus        int `envconfig:"REFERRAL_BONUS" default:"25"`
	ReferralCodeAttempts int `envconfig:"REFERRAL_CODE_ATTEMPTS" default:"5"`

	// Pub/Sub credit event stream
	GCPProjectID                  string `envconfig:"GCP_PROJECT_ID"`
	PubSubEmulatorHost            string `envconfig:"PUBSUB_EMULATOR_HOST"`
	PubSubCreditEventsTopic       string `envconfig:"PUBSUB_CREDIT_EVENTS_TOPIC" default:"credit-events"`
	DLQEndpointURL                string `envconfig:"DLQ_ENDPOINT_URL"`
	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`

	// Stripe credit packs
	StripeSecretKey         string `envconfig:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret     string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	StripePricePackSmall    string `envconfig:"STRIPE_PRICE_PACK_SMALL"`
	StripePricePackLarge    string `envconfig:"STRIPE_PRICE_PACK_LARGE"`
	CreditPackSmall         int    `envconfig:"CREDIT_PACK_SMALL" default:"100"`
	CreditPackLarge         int    `envconfig:"CREDIT_PACK_LARGE" default:"500"`
	StripeCheckoutReturnURL string `envconfig:"STRIPE_CHECKOUT_RETURN_URL" default:"http://localhost:3000/billing"`

	// Brevo transactional email
	BrevoAPIKey       string `envconfig:"BREVO_API_KEY"`
	BrevoAPIKeySecret string `envconfig:"BREVO_API_KEY_SECRET"`
	BrevoBaseURL      string `envconfig:"BREVO_BASE_URL" default:"https://api.brevo.com"`
	BrevoSenderEmail  string `envconfig:"BREVO_SENDER_EMAIL" default:"hello@tripbudget.app"`
	BrevoSenderName   string `envconfig:"BREVO_SENDER_NAME" default:"Trip Budget"`

	// Invitation mail orchestrator settings
	InviteQueueName           string `envconfig:"INVITE_QUEUE_NAME" default:"referral_invite_queue"`
	InvitePollTimeoutSec      int    `envconfig:"INVITE_POLL_TIMEOUT_SEC" default:"30"`
	InvitePollMaxMsg          int    `envconfig:"INVITE_POLL_MAX_MSG" default:"1"`
	InviteMaxRetries          int    `envconfig:"INVITE_MAX_RETRIES" default:"5"`
	InviteBackoffInitialSec   int    `envconfig:"INVITE_BACKOFF_INITIAL_SEC" default:"1"`
	InviteBackoffMaxSec       int    `envconfig:"INVITE_BACKOFF_MAX_SEC" default:"60"`
	InviteRequestTimeoutSec   int    `envconfig:"INVITE_REQUEST_TIMEOUT_SEC" default:"10"`
	InviteDeadLetterQueueName string `envconfig:"INVITE_DEAD_LETTER_QUEUE_NAME" default:"referral_invite_queue_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects ledger settings that could drive a balance negative.
func (c *Config) Validate() error {
	if c.InitialMessageGrant < 0 {
		return errors.New("INITIAL_MESSAGE_GRANT must not be negative")
	}
	if c.ReferralBonus < 0 {
		return errors.New("REFERRAL_BONUS must not be negative")
	}
	if c.ReferralCodeAttempts < 1 {
		return errors.New("REFERRAL_CODE_ATTEMPTS must be at least 1")
	}
	if c.CreditPackSmall < 0 || c.CreditPackLarge < 0 {
		return errors.New("credit pack sizes must not be negative")
	}
	return nil
}

// IsDevelopment reports whether the service runs against local infrastructure.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
