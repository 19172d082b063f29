package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// WinnerRepository reads redemption records. Winners are only ever written
// inside the coupon redemption transaction.
type WinnerRepository struct {
	db *pgxpool.Pool
}

// NewWinnerRepository creates a new WinnerRepository.
func NewWinnerRepository(db *pgxpool.Pool) *WinnerRepository {
	return &WinnerRepository{db: db}
}

// ListByOwner returns the owner's redemption history, newest first, with the
// coupon code and prize name joined in for display.
func (r *WinnerRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Winner, error) {
	query := `
		SELECT w.id, w.owner_id, w.coupon_id, c.code, w.prize_id,
		       COALESCE(p.name, ''), w.customer_name, w.contact, w.redeemed_at
		FROM winners w
		JOIN coupons c ON c.id = w.coupon_id
		LEFT JOIN prizes p ON p.id = w.prize_id
		WHERE w.owner_id = $1
		ORDER BY w.redeemed_at DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	defer rows.Close()

	var winners []domain.Winner
	for rows.Next() {
		var w domain.Winner
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.CouponID, &w.CouponCode, &w.PrizeID,
			&w.PrizeName, &w.CustomerName, &w.Contact, &w.RedeemedAt); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, w)
	}
	return winners, nil
}

// CountByOwner returns how many prizes the owner has handed out.
func (r *WinnerRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM winners WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count winners: %w", err)
	}
	return count, nil
}
