package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tripbudget/internal/config"
	"tripbudget/internal/db"
	"tripbudget/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [up|status]")
	}
	flag.Parse()

	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	switch cmd {
	case "up":
		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			logger.Fatal().Msgf("Migration failed: %v", err)
		}
		if len(applied) == 0 {
			logger.Info().Msg("No pending migrations")
			return
		}
		for _, name := range applied {
			logger.Info().Str("migration", name).Msg("Applied")
		}
	case "status":
		statuses, err := db.Status(ctx, pool)
		if err != nil {
			logger.Fatal().Msgf("Failed to read migration status: %v", err)
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%-45s %s\n", s.Name, state)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}
