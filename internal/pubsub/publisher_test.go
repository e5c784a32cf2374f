package pubsub

import (
	"context"
	"os"
	"testing"
	"time"

	"tripbudget/internal/config"

	ps "cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewPublisherInvalidProject(t *testing.T) {
	req := require.New(t)
	cfg := &config.Config{GCPProjectID: ""}

	_, err := NewPublisher(context.Background(), cfg)

	req.Error(err)
}

func TestNewFallsBackToNoop(t *testing.T) {
	req := require.New(t)
	cfg := &config.Config{GCPProjectID: ""}

	pub, err := New(context.Background(), cfg, zerolog.Nop())
	req.NoError(err)
	req.IsType(&NoopPublisher{}, pub)

	id, err := pub.Publish(context.Background(), "credit-events", []byte(`{"user_id":"u1"}`), nil)
	req.NoError(err)
	req.Empty(id)
	req.NoError(pub.Close())
}

func TestPublishWithEmulator(t *testing.T) {
	emulator := os.Getenv("PUBSUB_EMULATOR_HOST")
	if emulator == "" {
		t.Skip("PUBSUB_EMULATOR_HOST is not set, skip emulator integration test")
	}
	req := require.New(t)

	ctx := context.Background()
	cfg := &config.Config{GCPProjectID: "test-project", PubSubEmulatorHost: emulator}
	pub, err := NewPublisher(ctx, cfg)
	req.NoError(err)
	defer pub.Close()

	topicName := "test-credit-events-" + time.Now().Format("150405.000000")
	topic, err := pub.client.CreateTopic(ctx, topicName)
	req.NoError(err)
	sub, err := pub.client.CreateSubscription(ctx, topicName+"-sub", ps.SubscriptionConfig{Topic: topic})
	req.NoError(err)

	msgID, err := pub.Publish(ctx, topicName, []byte(`{"reason":"purchase"}`), map[string]string{"reason": "purchase"})
	req.NoError(err)
	req.NotEmpty(msgID)

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c := make(chan *ps.Message, 1)
	go func() {
		_ = sub.Receive(recvCtx, func(ctx context.Context, m *ps.Message) {
			m.Ack()
			c <- m
			cancel()
		})
	}()

	select {
	case m := <-c:
		req.JSONEq(`{"reason":"purchase"}`, string(m.Data))
		req.Equal("purchase", m.Attributes["reason"])
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message from emulator subscription")
	}
}
