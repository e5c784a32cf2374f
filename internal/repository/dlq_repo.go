//go:generate go run go.uber.org/mock/mockgen -source=dlq_repo.go -destination=../mocks/mock_dlq_repository.go -package=mocks
package repository

import (
	"context"
	"fmt"

	"tripbudget/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DLQRepository stores credit events that Pub/Sub could not deliver.
type DLQRepository interface {
	Create(ctx context.Context, message *model.DeadLetterMessage) error
	CountUnprocessed(ctx context.Context) (int, error)
}

type dlqRepository struct {
	pool *pgxpool.Pool
}

func NewDLQRepository(pool *pgxpool.Pool) DLQRepository {
	return &dlqRepository{pool: pool}
}

func (r *dlqRepository) Create(ctx context.Context, message *model.DeadLetterMessage) error {
	const q = `
		INSERT INTO dead_letter_messages (subscription_name, message_id, user_id, payload, attributes, status)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6)
		RETURNING id, created_at, updated_at`
	var attrs any
	if len(message.Attributes) > 0 {
		attrs = string(message.Attributes)
	}
	err := r.pool.QueryRow(
		ctx,
		q,
		message.SubscriptionName,
		message.MessageID,
		message.UserID,
		string(message.Payload),
		attrs,
		message.Status,
	).Scan(&message.ID, &message.CreatedAt, &message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("storing dead letter %s: %w", message.MessageID, err)
	}
	return nil
}

func (r *dlqRepository) CountUnprocessed(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM dead_letter_messages WHERE status = 'unprocessed'`
	var n int
	if err := r.pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting dead letters: %w", err)
	}
	return n, nil
}
