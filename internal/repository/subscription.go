package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// SubscriptionRepository reads subscription state. Mutation happens only
// through claim confirmation (see ClaimRepository.Confirm).
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// FindByAccount returns the account's subscription, or (nil, nil) when the
// account has none yet.
func (r *SubscriptionRepository) FindByAccount(ctx context.Context, accountID string) (*domain.Subscription, error) {
	query := `SELECT account_id, active, expires_on, updated_at FROM subscriptions WHERE account_id = $1`
	row := r.db.QueryRow(ctx, query, accountID)

	var s domain.Subscription
	err := row.Scan(&s.AccountID, &s.Active, &s.ExpiresOn, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	return &s, nil
}
