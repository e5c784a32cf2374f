package handler

import (
	"context"

	"tripbudget/internal/api/v1/dto"
	"tripbudget/internal/middleware"
	"tripbudget/internal/model"

	"github.com/danielgtaylor/huma/v2"
)

// Helper to extract user ID from context (injected by auth middleware)
func getUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		return "", huma.Error401Unauthorized("User ID not found in context")
	}
	return userID, nil
}

func toCounterDTO(c *model.MessageCounter) dto.CounterResponseDTO {
	return dto.CounterResponseDTO{
		UserID:       c.UserID,
		MessageCount: c.MessageCount,
		UpdatedAt:    c.UpdatedAt,
	}
}
