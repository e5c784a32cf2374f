//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=../mocks/mock_publisher.go -package=mocks
package pubsub

import (
	"context"
	"fmt"

	"tripbudget/internal/config"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error)
	Close() error
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
// When PUBSUB_EMULATOR_HOST is set the client talks to the emulator without credentials.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	var opts []option.ClientOption
	if cfg.PubSubEmulatorHost != "" {
		opts = append(opts, option.WithEndpoint(cfg.PubSubEmulatorHost), option.WithoutAuthentication())
	}

	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// NoopPublisher drops every message. Used when no GCP project is configured.
type NoopPublisher struct {
	logger zerolog.Logger
}

func NewNoopPublisher(logger zerolog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With().Str("component", "NoopPublisher").Logger()}
}

func (p *NoopPublisher) Publish(_ context.Context, topic string, payload []byte, _ map[string]string) (string, error) {
	p.logger.Debug().Str("topic", topic).RawJSON("payload", payload).Msg("Pub/Sub disabled, dropping message")
	return "", nil
}

func (p *NoopPublisher) Close() error { return nil }

// New returns a Pub/Sub publisher when a project is configured and a
// NoopPublisher otherwise.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Publisher, error) {
	if cfg.GCPProjectID == "" {
		logger.Warn().Msg("GCP_PROJECT_ID not set, credit events will not be published")
		return NewNoopPublisher(logger), nil
	}
	return NewPublisher(ctx, cfg)
}
