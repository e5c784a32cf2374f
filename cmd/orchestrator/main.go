package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"tripbudget/internal/config"
	"tripbudget/internal/db"
	"tripbudget/internal/logger"
	"tripbudget/internal/orchestrator/invitemail"
	"tripbudget/internal/pgmq"
	"tripbudget/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	mode := flag.String("mode", "", "Orchestrator mode: invite-mailer")
	flag.Parse()

	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	pgmqClient := pgmq.New(pool)
	logger.Info().Msg("PGMQ client initialized")

	var runErr error
	switch *mode {
	case "invite-mailer":
		var secrets service.SecretResolver
		if cfg.BrevoAPIKey == "" && cfg.BrevoAPIKeySecret != "" {
			resolver, err := service.NewSecretManagerResolver(ctx, cfg.GCPProjectID)
			if err != nil {
				logger.Fatal().Msgf("Failed to create Secret Manager client: %v", err)
			}
			defer resolver.Close()
			secrets = resolver
		}
		apiKey, err := service.ResolveAPIKey(ctx, cfg.BrevoAPIKey, cfg.BrevoAPIKeySecret, secrets)
		if err != nil {
			logger.Fatal().Msgf("Failed to resolve Brevo API key: %v", err)
		}

		opts := invitemail.OptionsFromConfig(cfg)
		sender := service.NewBrevoClient(cfg.BrevoBaseURL, apiKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, time.Duration(cfg.InviteRequestTimeoutSec)*time.Second, logger)
		runErr = invitemail.NewWorker(pgmqClient, sender, opts, logger).Run(ctx)
	default:
		logger.Fatal().Msgf("Invalid mode: %s", *mode)
	}

	if runErr != nil {
		logger.Fatal().Msgf("%s orchestrator failed: %v", *mode, runErr)
	}

	logger.Info().Msgf("%s orchestrator stopped gracefully", *mode)
}
