//go:generate go run go.uber.org/mock/mockgen -source=counter_repo.go -destination=../mocks/mock_counter_repository.go -package=mocks
package repository

import (
	"context"
	"errors"
	"fmt"

	"tripbudget/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInsufficientCredits is returned by Charge when the balance is below the amount.
var ErrInsufficientCredits = errors.New("insufficient_credits")

// CounterRepository persists per-user message balances in user_message_counters.
// Every mutation locks the user's row, so concurrent changes never lose updates.
type CounterRepository interface {
	// GetOrCreate returns the user's counter, inserting it with initialGrant when absent.
	GetOrCreate(ctx context.Context, userID string, initialGrant int) (*model.MessageCounter, bool, error)
	// Adjust adds delta to the balance, clamping the result at zero.
	Adjust(ctx context.Context, userID string, delta, initialGrant int) (*model.CounterAdjustment, error)
	// Charge subtracts amount only if the balance covers it. Returns ErrInsufficientCredits otherwise.
	Charge(ctx context.Context, userID string, amount, initialGrant int) (*model.CounterAdjustment, error)
}

type counterRepo struct {
	pool *pgxpool.Pool
}

// NewCounterRepo creates a new CounterRepository.
func NewCounterRepo(pool *pgxpool.Pool) CounterRepository {
	return &counterRepo{pool: pool}
}

const counterColumns = `id, user_id, message_count, created_at, updated_at`

func scanCounter(row pgx.Row, c *model.MessageCounter) error {
	return row.Scan(&c.ID, &c.UserID, &c.MessageCount, &c.CreatedAt, &c.UpdatedAt)
}

func (r *counterRepo) GetOrCreate(ctx context.Context, userID string, initialGrant int) (*model.MessageCounter, bool, error) {
	return getOrCreateCounter(ctx, r.pool, userID, initialGrant)
}

func (r *counterRepo) Adjust(ctx context.Context, userID string, delta, initialGrant int) (*model.CounterAdjustment, error) {
	var adj *model.CounterAdjustment
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		adj, err = adjustCounter(ctx, tx, userID, delta, initialGrant, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

func (r *counterRepo) Charge(ctx context.Context, userID string, amount, initialGrant int) (*model.CounterAdjustment, error) {
	var adj *model.CounterAdjustment
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		adj, err = adjustCounter(ctx, tx, userID, -amount, initialGrant, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// getOrCreateCounter materializes the counter row with initialGrant when it
// does not exist. The bool result reports whether this call inserted it.
func getOrCreateCounter(ctx context.Context, q querier, userID string, initialGrant int) (*model.MessageCounter, bool, error) {
	insertQ := `
		INSERT INTO user_message_counters (user_id, message_count)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING ` + counterColumns
	var c model.MessageCounter
	err := scanCounter(q.QueryRow(ctx, insertQ, userID, initialGrant), &c)
	if err == nil {
		return &c, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("creating message counter for user %s: %w", userID, err)
	}

	selectQ := `SELECT ` + counterColumns + ` FROM user_message_counters WHERE user_id = $1`
	if err := scanCounter(q.QueryRow(ctx, selectQ, userID), &c); err != nil {
		return nil, false, fmt.Errorf("fetch message counter for user %s: %w", userID, err)
	}
	return &c, false, nil
}

// adjustCounter applies delta to the user's balance inside tx. The row is
// created first if needed and then locked with FOR UPDATE, so the previous
// balance it reports is exact. With strict set, a debit larger than the
// balance fails with ErrInsufficientCredits instead of clamping.
func adjustCounter(ctx context.Context, tx pgx.Tx, userID string, delta, initialGrant int, strict bool) (*model.CounterAdjustment, error) {
	_, created, err := getOrCreateCounter(ctx, tx, userID, initialGrant)
	if err != nil {
		return nil, err
	}

	lockQ := `SELECT ` + counterColumns + ` FROM user_message_counters WHERE user_id = $1 FOR UPDATE`
	var current model.MessageCounter
	if err := scanCounter(tx.QueryRow(ctx, lockQ, userID), &current); err != nil {
		return nil, fmt.Errorf("locking message counter for user %s: %w", userID, err)
	}

	adj := &model.CounterAdjustment{PreviousBalance: current.MessageCount, Created: created}
	if strict && current.MessageCount+delta < 0 {
		return nil, ErrInsufficientCredits
	}
	if delta == 0 {
		adj.Counter = current
		return adj, nil
	}

	updateQ := `
		UPDATE user_message_counters
		SET message_count = GREATEST(message_count + $2, 0),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + counterColumns
	if err := scanCounter(tx.QueryRow(ctx, updateQ, userID, delta), &adj.Counter); err != nil {
		return nil, fmt.Errorf("updating message counter for user %s: %w", userID, err)
	}
	return adj, nil
}
