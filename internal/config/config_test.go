package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should apply ledger defaults", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("DB_CONNECTION_STRING", "postgres://localhost:5432/tripbudget")
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("ENV", "development")
		t.Setenv("PORT", "8080")

		cfg, err := Load()

		req.NoError(err)
		req.Equal(25, cfg.InitialMessageGrant)
		req.Equal(25, cfg.ReferralBonus)
		req.Equal(5, cfg.ReferralCodeAttempts)
		req.Equal("8080", cfg.Port)
		req.True(cfg.IsDevelopment())
	})

	t.Run("should fail without a database connection string", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("DB_CONNECTION_STRING", "")
		req.NoError(os.Unsetenv("DB_CONNECTION_STRING"))
		t.Setenv("SUPABASE_JWT_SECRET", "secret")

		_, err := Load()

		req.Error(err)
	})

	t.Run("should read the checkout return url", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("DB_CONNECTION_STRING", "postgres://localhost:5432/tripbudget")
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("STRIPE_CHECKOUT_RETURN_URL", "https://tripbudget.app/billing")

		cfg, err := Load()

		req.NoError(err)
		req.Equal("https://tripbudget.app/billing", cfg.StripeCheckoutReturnURL)
	})

	t.Run("should reject a negative initial grant", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("DB_CONNECTION_STRING", "postgres://localhost:5432/tripbudget")
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("INITIAL_MESSAGE_GRANT", "-1")

		_, err := Load()

		req.Error(err)
	})
}

func TestValidate(t *testing.T) {
	req := require.New(t)
	cfg := Config{InitialMessageGrant: 50, ReferralBonus: 25, ReferralCodeAttempts: 0}

	req.Error(cfg.Validate())

	cfg.ReferralCodeAttempts = 1
	req.NoError(cfg.Validate())
}
