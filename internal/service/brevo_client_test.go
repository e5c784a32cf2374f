package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripbudget/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBrevoClient_Send(t *testing.T) {
	t.Run("should post the transactional email and return the message id", func(t *testing.T) {
		req := require.New(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req.Equal("/v3/smtp/email", r.URL.Path)
			req.Equal("key-123", r.Header.Get("api-key"))
			var body map[string]any
			req.NoError(json.NewDecoder(r.Body).Decode(&body))
			req.Equal("You're invited", body["subject"])
			req.Equal("hello@tripbudget.app", body["sender"].(map[string]any)["email"])
			req.Equal("friend@example.com", body["to"].([]any)[0].(map[string]any)["email"])
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"messageId":"<abc@smtp-relay>"}`))
		}))
		defer srv.Close()
		client := service.NewBrevoClient(srv.URL, "key-123", "hello@tripbudget.app", "Trip Budget", 5*time.Second, zerolog.Nop())

		id, err := client.Send(context.Background(), service.Email{
			ToEmail:     "friend@example.com",
			Subject:     "You're invited",
			HTMLContent: "<p>hi</p>",
		})

		req.NoError(err)
		req.Equal("<abc@smtp-relay>", id)
	})

	t.Run("should surface API errors with their status", func(t *testing.T) {
		req := require.New(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"too_many_requests","message":"slow down"}`))
		}))
		defer srv.Close()
		client := service.NewBrevoClient(srv.URL, "key-123", "hello@tripbudget.app", "Trip Budget", 5*time.Second, zerolog.Nop())

		_, err := client.Send(context.Background(), service.Email{ToEmail: "friend@example.com"})

		var brevoErr *service.BrevoError
		req.True(errors.As(err, &brevoErr))
		req.Equal(http.StatusTooManyRequests, brevoErr.StatusCode)
		req.Equal("too_many_requests", brevoErr.Code)
		req.True(brevoErr.Retryable())
	})

	t.Run("should not retry client errors", func(t *testing.T) {
		req := require.New(t)
		err := &service.BrevoError{StatusCode: http.StatusBadRequest}
		req.False(err.Retryable())
	})
}
