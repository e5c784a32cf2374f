//go:generate go run go.uber.org/mock/mockgen -source=secret_manager.go -destination=../mocks/mock_secret_resolver.go -package=mocks
package service

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretResolver reads secret values, e.g. third-party API keys.
type SecretResolver interface {
	AccessSecret(ctx context.Context, name string) (string, error)
}

// SecretManagerResolver reads secrets from Google Secret Manager.
type SecretManagerResolver struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretManagerResolver(ctx context.Context, projectID string) (*SecretManagerResolver, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}
	// Secret Manager requires a real GCP project even for local development.
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &SecretManagerResolver{client: client, projectID: projectID}, nil
}

// AccessSecret returns the latest version of the secret. name may be a bare
// secret id or a full resource name.
func (s *SecretManagerResolver) AccessSecret(ctx context.Context, name string) (string, error) {
	resourceName := name
	if !strings.HasPrefix(name, "projects/") {
		resourceName = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, name)
	}
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resourceName})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version %s: %w", name, err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *SecretManagerResolver) Close() error {
	return s.client.Close()
}

// ResolveAPIKey prefers an explicit key and falls back to the named secret.
func ResolveAPIKey(ctx context.Context, explicit, secretName string, secrets SecretResolver) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if secretName == "" || secrets == nil {
		return "", fmt.Errorf("no API key or secret name configured")
	}
	return secrets.AccessSecret(ctx, secretName)
}
