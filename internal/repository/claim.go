package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// ClaimRepository handles payment claims and the subscription updates that
// confirming them triggers.
type ClaimRepository struct {
	db *pgxpool.Pool
}

// NewClaimRepository creates a new ClaimRepository.
func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Insert stores a fresh, unconfirmed payment claim.
func (r *ClaimRepository) Insert(ctx context.Context, c *domain.PaymentClaim) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payment_claims (id, account_id, upi_name, upi_id, confirmed, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, c.ID, c.AccountID, c.UPIName, c.UPIID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment claim: %w", err)
	}
	return nil
}

// ListAll returns claims for the staff surface, unconfirmed first.
func (r *ClaimRepository) ListAll(ctx context.Context) ([]domain.PaymentClaim, error) {
	query := `
		SELECT id, account_id, upi_name, upi_id, confirmed, created_at, confirmed_at
		FROM payment_claims ORDER BY confirmed ASC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment claims: %w", err)
	}
	defer rows.Close()

	var claims []domain.PaymentClaim
	for rows.Next() {
		var c domain.PaymentClaim
		if err := rows.Scan(&c.ID, &c.AccountID, &c.UPIName, &c.UPIID, &c.Confirmed, &c.CreatedAt, &c.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, nil
}

// Confirm flips one claim to confirmed and extends the claimant's
// subscription in the same transaction. The claim row is locked first so a
// double confirmation cannot double-extend: a claim already confirmed comes
// back with applied=false and the subscription untouched.
func (r *ClaimRepository) Confirm(ctx context.Context, claimID string, now time.Time) (*domain.Subscription, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var accountID string
	var confirmed bool
	err = tx.QueryRow(ctx,
		`SELECT account_id, confirmed FROM payment_claims WHERE id = $1 FOR UPDATE`, claimID,
	).Scan(&accountID, &confirmed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, domain.ErrNotFound("payment claim not found")
		}
		return nil, false, fmt.Errorf("failed to load payment claim: %w", err)
	}

	sub := &domain.Subscription{AccountID: accountID}
	err = tx.QueryRow(ctx,
		`SELECT account_id, active, expires_on, updated_at FROM subscriptions WHERE account_id = $1 FOR UPDATE`,
		accountID,
	).Scan(&sub.AccountID, &sub.Active, &sub.ExpiresOn, &sub.UpdatedAt)
	if err != nil && err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("failed to load subscription: %w", err)
	}

	if confirmed {
		// Idempotent no-op: report current state without re-extending.
		return sub, false, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE payment_claims SET confirmed = TRUE, confirmed_at = $1 WHERE id = $2`, now, claimID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to confirm claim: %w", err)
	}

	sub.Extend(now)
	sub.UpdatedAt = now
	_, err = tx.Exec(ctx, `
		INSERT INTO subscriptions (account_id, active, expires_on, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET active = EXCLUDED.active, expires_on = EXCLUDED.expires_on, updated_at = EXCLUDED.updated_at
	`, sub.AccountID, sub.Active, sub.ExpiresOn, sub.UpdatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to extend subscription: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit confirmation: %w", err)
	}
	return sub, true, nil
}
