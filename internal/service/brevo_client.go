//go:generate go run go.uber.org/mock/mockgen -source=brevo_client.go -destination=../mocks/mock_email_sender.go -package=mocks
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Email is a single transactional message.
type Email struct {
	ToEmail     string
	ToName      string
	Subject     string
	HTMLContent string
	Tags        []string
}

// EmailSender delivers transactional email and returns the provider message id.
type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoSendRequest struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	Tags        []string       `json:"tags,omitempty"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}

type brevoError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BrevoError is returned for non-2xx responses.
type BrevoError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *BrevoError) Error() string {
	return fmt.Sprintf("brevo returned status %d: %s %s", e.StatusCode, e.Code, e.Message)
}

// Retryable reports whether sending again may succeed.
func (e *BrevoError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

type brevoClient struct {
	http   *resty.Client
	sender brevoContact
	logger zerolog.Logger
}

// NewBrevoClient builds a client for the Brevo transactional email API.
func NewBrevoClient(baseURL, apiKey, senderEmail, senderName string, timeout time.Duration, logger zerolog.Logger) EmailSender {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("api-key", apiKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &brevoClient{
		http:   client,
		sender: brevoContact{Email: senderEmail, Name: senderName},
		logger: logger.With().Str("service", "BrevoClient").Logger(),
	}
}

func (c *brevoClient) Send(ctx context.Context, email Email) (string, error) {
	body := brevoSendRequest{
		Sender:      c.sender,
		To:          []brevoContact{{Email: email.ToEmail, Name: email.ToName}},
		Subject:     email.Subject,
		HTMLContent: email.HTMLContent,
		Tags:        email.Tags,
	}
	var out brevoSendResponse
	var apiErr brevoError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v3/smtp/email")
	if err != nil {
		return "", fmt.Errorf("making request to Brevo: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn().Int("status_code", resp.StatusCode()).Str("code", apiErr.Code).Msg("Brevo rejected transactional email")
		return "", &BrevoError{StatusCode: resp.StatusCode(), Code: apiErr.Code, Message: apiErr.Message}
	}
	return out.MessageID, nil
}
