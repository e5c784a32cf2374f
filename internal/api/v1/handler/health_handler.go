package handler

import (
	"context"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/api/v1/operation"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger zerolog.Logger
}

func NewHealthHandler(db Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) Health(ctx context.Context, input *operation.HealthInput) (*operation.HealthOutput, error) {
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Health check failed to reach database")
		return nil, huma.Error503ServiceUnavailable("database unavailable")
	}
	return &operation.HealthOutput{Body: dto.HealthResponseDTO{Status: "ok"}}, nil
}
