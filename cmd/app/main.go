package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripbudget/internal/api/v1/handler"
	"tripbudget/internal/api/v1/router"
	"tripbudget/internal/config"
	"tripbudget/internal/db"
	"tripbudget/internal/logger"
	"tripbudget/internal/middleware"
	"tripbudget/internal/pgmq"
	"tripbudget/internal/pubsub"
	"tripbudget/internal/repository"
	"tripbudget/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	ctx := context.Background()

	// 2. Database
	pool, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if cfg.IsDevelopment() {
		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			logger.Fatal().Msgf("Failed to apply migrations: %v", err)
		}
		logger.Info().Strs("applied", applied).Msg("Migrations up to date")
	}

	// 3. Credit event stream
	publisher, err := pubsub.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
	}
	defer publisher.Close()
	events := service.NewCreditEventPublisher(publisher, cfg.PubSubCreditEventsTopic, logger)

	// 4. Repositories and services
	counterRepo := repository.NewCounterRepo(pool)
	referralRepo := repository.NewReferralRepo(pool)
	purchaseRepo := repository.NewPurchaseRepo(pool)
	dlqRepo := repository.NewDLQRepository(pool)

	ledgerSvc := service.NewLedgerService(counterRepo, events, cfg.InitialMessageGrant, logger)
	referralSvc := service.NewReferralService(
		referralRepo,
		events,
		pgmq.New(pool),
		validator.New(validator.WithRequiredStructEnabled()),
		service.ReferralOptions{
			Bonus:        cfg.ReferralBonus,
			InitialGrant: cfg.InitialMessageGrant,
			CodeAttempts: cfg.ReferralCodeAttempts,
			InviteQueue:  cfg.InviteQueueName,
		},
		logger,
	)
	stripeSvc := service.NewStripeService(cfg, purchaseRepo, events, logger)
	dlqSvc := service.NewDLQService(dlqRepo, logger)

	// 5. Router
	handlers := router.Handlers{
		Credit:        handler.NewCreditHandler(ledgerSvc, logger),
		Referral:      handler.NewReferralHandler(referralSvc, logger),
		Purchase:      handler.NewPurchaseHandler(stripeSvc, logger),
		DLQ:           handler.NewDLQHandler(dlqSvc, logger),
		Health:        handler.NewHealthHandler(pool, logger),
		StripeWebhook: stripeSvc.HandleWebhook,
	}
	middlewares := router.Middlewares{
		Auth:       middleware.AuthMiddleware(cfg.JWTSecret, logger),
		PubSubAuth: middleware.PubSubAuthMiddleware(cfg.IsDevelopment(), cfg.DLQEndpointURL, cfg.PubSubPushServiceAccountEmail, logger),
		AdminAuth:  middleware.AdminTokenMiddleware(cfg.AdminAPIToken, logger),
	}
	r := router.New(cfg, handlers, middlewares, logger)

	// 6. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	logger.Info().Msg("Server shut down gracefully")
}
