//go:generate go run go.uber.org/mock/mockgen -source=purchase_repo.go -destination=../mocks/mock_purchase_repository.go -package=mocks
package repository

import (
	"context"
	"errors"
	"fmt"

	"tripbudget/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPurchaseAlreadyApplied is returned when a checkout session was credited before.
var ErrPurchaseAlreadyApplied = errors.New("purchase already applied")

// PurchaseRepository records paid credit packs.
type PurchaseRepository interface {
	// Apply records the purchase and credits the user in one transaction.
	// A session that was already recorded returns ErrPurchaseAlreadyApplied and changes nothing.
	Apply(ctx context.Context, purchase *model.CreditPurchase, initialGrant int) (*model.CounterAdjustment, error)
	ListByUser(ctx context.Context, userID string) ([]model.CreditPurchase, error)
}

type purchaseRepo struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepo creates a new PurchaseRepository.
func NewPurchaseRepo(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepo{pool: pool}
}

const purchaseColumns = `id, user_id, stripe_session_id, credits, created_at`

func scanPurchase(row pgx.Row, p *model.CreditPurchase) error {
	return row.Scan(&p.ID, &p.UserID, &p.StripeSessionID, &p.Credits, &p.CreatedAt)
}

func (r *purchaseRepo) Apply(ctx context.Context, purchase *model.CreditPurchase, initialGrant int) (*model.CounterAdjustment, error) {
	var adj *model.CounterAdjustment
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		insertQ := `
			INSERT INTO credit_purchases (user_id, stripe_session_id, credits)
			VALUES ($1, $2, $3)
			ON CONFLICT (stripe_session_id) DO NOTHING
			RETURNING ` + purchaseColumns
		if err := scanPurchase(tx.QueryRow(ctx, insertQ, purchase.UserID, purchase.StripeSessionID, purchase.Credits), purchase); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPurchaseAlreadyApplied
			}
			return fmt.Errorf("recording purchase %s for user %s: %w", purchase.StripeSessionID, purchase.UserID, err)
		}
		var err error
		adj, err = adjustCounter(ctx, tx, purchase.UserID, purchase.Credits, initialGrant, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

func (r *purchaseRepo) ListByUser(ctx context.Context, userID string) ([]model.CreditPurchase, error) {
	q := `
		SELECT ` + purchaseColumns + `
		FROM credit_purchases
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying purchases for user %s: %w", userID, err)
	}
	defer rows.Close()

	purchases := []model.CreditPurchase{}
	for rows.Next() {
		var p model.CreditPurchase
		if err := scanPurchase(rows, &p); err != nil {
			return nil, fmt.Errorf("scanning purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}
	return purchases, nil
}
