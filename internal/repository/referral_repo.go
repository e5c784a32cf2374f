//go:generate go run go.uber.org/mock/mockgen -source=referral_repo.go -destination=../mocks/mock_referral_repository.go -package=mocks
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tripbudget/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrDuplicateCode is returned by Create when the generated code is already taken.
	ErrDuplicateCode = errors.New("referral code already exists")
	// ErrReferralNotRedeemable covers both unknown and already-used codes.
	ErrReferralNotRedeemable = errors.New("referral code invalid or already used")
	// ErrSelfRedemption is returned when a user redeems a code they issued.
	ErrSelfRedemption = errors.New("referral code issued by redeemer")
)

const referralCodeConstraint = "user_referrals_referral_code_key"

// ReferralRepository persists invitation codes in user_referrals.
type ReferralRepository interface {
	Create(ctx context.Context, ref *model.Referral) error
	// Redeem marks the code used and credits bonus to both parties in one transaction.
	Redeem(ctx context.Context, code, redeemerID string, bonus, initialGrant int) (*model.Redemption, error)
	ListByReferrer(ctx context.Context, referrerID string, limit, offset int) ([]model.Referral, error)
	StatsByReferrer(ctx context.Context, referrerID string) (*model.ReferralStats, error)
}

type referralRepo struct {
	pool *pgxpool.Pool
}

// NewReferralRepo creates a new ReferralRepository.
func NewReferralRepo(pool *pgxpool.Pool) ReferralRepository {
	return &referralRepo{pool: pool}
}

const referralColumns = `id, referrer_id, referee_email, referral_code, is_used, used_at, created_at`

func scanReferral(row pgx.Row, ref *model.Referral) error {
	return row.Scan(
		&ref.ID,
		&ref.ReferrerID,
		&ref.RefereeEmail,
		&ref.ReferralCode,
		&ref.IsUsed,
		&ref.UsedAt,
		&ref.CreatedAt,
	)
}

func (r *referralRepo) Create(ctx context.Context, ref *model.Referral) error {
	q := `
		INSERT INTO user_referrals (referrer_id, referee_email, referral_code)
		VALUES ($1, $2, $3)
		RETURNING ` + referralColumns
	err := scanReferral(r.pool.QueryRow(ctx, q, ref.ReferrerID, ref.RefereeEmail, ref.ReferralCode), ref)
	if err != nil {
		if isUniqueViolation(err, referralCodeConstraint) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("creating referral for user %s: %w", ref.ReferrerID, err)
	}
	return nil
}

func (r *referralRepo) Redeem(ctx context.Context, code, redeemerID string, bonus, initialGrant int) (*model.Redemption, error) {
	var out model.Redemption
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		// Concurrent redeemers block on the row lock; the loser re-evaluates
		// is_used = false after the winner commits and finds nothing.
		lockQ := `
			SELECT ` + referralColumns + `
			FROM user_referrals
			WHERE referral_code = $1 AND is_used = false
			FOR UPDATE`
		var ref model.Referral
		if err := scanReferral(tx.QueryRow(ctx, lockQ, code), &ref); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrReferralNotRedeemable
			}
			return fmt.Errorf("fetch referral %s: %w", code, err)
		}
		if ref.ReferrerID == redeemerID {
			return ErrSelfRedemption
		}

		markQ := `
			UPDATE user_referrals
			SET is_used = true, used_at = NOW()
			WHERE id = $1
			RETURNING ` + referralColumns
		if err := scanReferral(tx.QueryRow(ctx, markQ, ref.ID), &out.Referral); err != nil {
			return fmt.Errorf("marking referral %s used: %w", ref.ID, err)
		}

		// Lock counters in a stable order so two crossing redemptions cannot deadlock.
		users := []string{ref.ReferrerID, redeemerID}
		sort.Strings(users)
		for _, userID := range users {
			adj, err := adjustCounter(ctx, tx, userID, bonus, initialGrant, false)
			if err != nil {
				return err
			}
			if userID == ref.ReferrerID {
				out.Referrer = *adj
			} else {
				out.Referee = *adj
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *referralRepo) ListByReferrer(ctx context.Context, referrerID string, limit, offset int) ([]model.Referral, error) {
	q := `
		SELECT ` + referralColumns + `
		FROM user_referrals
		WHERE referrer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, referrerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying referrals for user %s: %w", referrerID, err)
	}
	defer rows.Close()

	referrals := []model.Referral{}
	for rows.Next() {
		var ref model.Referral
		if err := scanReferral(rows, &ref); err != nil {
			return nil, fmt.Errorf("scanning referral row: %w", err)
		}
		referrals = append(referrals, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating referral rows: %w", err)
	}
	return referrals, nil
}

// StatsByReferrer counts issued and redeemed codes. CreditsEarned is left to
// the caller, which knows the configured bonus.
func (r *referralRepo) StatsByReferrer(ctx context.Context, referrerID string) (*model.ReferralStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_used)
		FROM user_referrals
		WHERE referrer_id = $1`
	var stats model.ReferralStats
	if err := r.pool.QueryRow(ctx, q, referrerID).Scan(&stats.Issued, &stats.Redeemed); err != nil {
		return nil, fmt.Errorf("counting referrals for user %s: %w", referrerID, err)
	}
	stats.Pending = stats.Issued - stats.Redeemed
	return &stats, nil
}
