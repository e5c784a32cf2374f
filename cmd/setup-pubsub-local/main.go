package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripbudget/internal/config"
	"tripbudget/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// host.docker.internal lets the emulator container reach the API on the host.
const dlqEndpointLocal = "http://host.docker.internal:8080/v1/dlq/record"

const retention = 7 * 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system environment variables.")
	}

	logger := logger.New()
	logger.Info().Msg("Starting Pub/Sub setup for the local environment")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.GCPProjectID == "" {
		logger.Fatal().Msg("GCP_PROJECT_ID is not set in the environment")
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set; this tool only targets the emulator")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close pubsub client")
		}
	}()

	resetEmulator(ctx, client, logger)
	if err := createResources(ctx, client, cfg.PubSubCreditEventsTopic, logger); err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub resources: %v", err)
	}

	logger.Info().Msg("Pub/Sub setup for local environment complete")
}

// resetEmulator deletes every subscription and topic. Only safe against the emulator.
func resetEmulator(ctx context.Context, client *pubsub.Client, logger zerolog.Logger) {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			logger.Fatal().Msgf("Failed to list subscriptions: %v", err)
		}
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("subscription", sub.ID()).Msg("Failed to delete subscription")
		}
	}

	topics := client.Topics(ctx)
	for {
		topic, err := topics.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			logger.Fatal().Msgf("Failed to list topics: %v", err)
		}
		if err := topic.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("topic", topic.ID()).Msg("Failed to delete topic")
		}
	}
	logger.Info().Msg("Emulator reset")
}

// createResources wires the credit event topic to a dead-letter topic whose
// subscription pushes into the API's /dlq/record endpoint.
func createResources(ctx context.Context, client *pubsub.Client, topicID string, logger zerolog.Logger) error {
	dlqTopic, err := client.CreateTopicWithConfig(ctx, topicID+"-dlq", &pubsub.TopicConfig{RetentionDuration: retention})
	if err != nil {
		return err
	}
	mainTopic, err := client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
	if err != nil {
		return err
	}

	retry := &pubsub.RetryPolicy{MinimumBackoff: 10 * time.Second, MaximumBackoff: 600 * time.Second}

	// Pull subscription for downstream consumers of the audit stream.
	if _, err := client.CreateSubscription(ctx, topicID+"-sub", pubsub.SubscriptionConfig{
		Topic:            mainTopic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
		RetryPolicy:      retry,
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlqTopic.String(),
			MaxDeliveryAttempts: 5,
		},
	}); err != nil {
		return err
	}

	if _, err := client.CreateSubscription(ctx, topicID+"-dlq-sub", pubsub.SubscriptionConfig{
		Topic:            dlqTopic,
		PushConfig:       pubsub.PushConfig{Endpoint: dlqEndpointLocal},
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
		RetryPolicy:      retry,
	}); err != nil {
		return err
	}

	logger.Info().
		Str("topic", topicID).
		Str("dlq_endpoint", dlqEndpointLocal).
		Msg("Created credit event topic, dead-letter topic and subscriptions")
	return nil
}
