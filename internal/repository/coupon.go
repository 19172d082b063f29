package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// CouponRepository handles database operations for coupons and their
// redemption records.
type CouponRepository struct {
	db *pgxpool.Pool
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(db *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{db: db}
}

// Insert stores a freshly issued coupon. It returns false without error when
// the generated code already exists, so the caller can regenerate and retry.
// The unique index on code is what actually arbitrates concurrent issuers.
func (r *CouponRepository) Insert(ctx context.Context, c *domain.Coupon) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO coupons (id, code, owner_id, prize_id, prize_type, status, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO NOTHING
	`, c.ID, c.Code, c.OwnerID, c.PrizeID, c.PrizeType, c.Status, c.ExpiryDate, c.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert coupon: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountByOwner returns the owner's current live coupon count (all statuses).
func (r *CouponRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM coupons WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count coupons: %w", err)
	}
	return count, nil
}

// CountUsedByOwner returns how many of the owner's coupons were redeemed.
func (r *CouponRepository) CountUsedByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM coupons WHERE owner_id = $1 AND status = $2`,
		ownerID, domain.CouponUsed,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count used coupons: %w", err)
	}
	return count, nil
}

// FindActive returns the owner's coupon by code if its stored status is
// Active. Wrong owner, wrong status or unknown code all come back (nil, nil).
func (r *CouponRepository) FindActive(ctx context.Context, ownerID, code string) (*domain.Coupon, error) {
	query := `
		SELECT id, code, owner_id, prize_id, prize_type, status, expiry_date, created_at
		FROM coupons WHERE code = $1 AND owner_id = $2 AND status = $3
	`
	row := r.db.QueryRow(ctx, query, code, ownerID, domain.CouponActive)

	var c domain.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.OwnerID, &c.PrizeID, &c.PrizeType, &c.Status, &c.ExpiryDate, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return &c, nil
}

// Redeem performs the atomic Active → Used transition and records the winner
// in the same transaction. The status, owner and expiry conditions all sit in
// the UPDATE's WHERE clause, so two concurrent redemptions of one code can
// never both succeed: the loser sees zero rows and gets (nil, nil).
func (r *CouponRepository) Redeem(ctx context.Context, ownerID, code string, w *domain.Winner) (*domain.Coupon, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var c domain.Coupon
	err = tx.QueryRow(ctx, `
		UPDATE coupons SET status = $1
		WHERE code = $2 AND owner_id = $3 AND status = $4
		  AND (expiry_date IS NULL OR expiry_date >= CURRENT_DATE)
		RETURNING id, code, owner_id, prize_id, prize_type, status, expiry_date, created_at
	`, domain.CouponUsed, code, ownerID, domain.CouponActive).Scan(
		&c.ID, &c.Code, &c.OwnerID, &c.PrizeID, &c.PrizeType, &c.Status, &c.ExpiryDate, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark coupon used: %w", err)
	}

	w.CouponID = c.ID
	w.CouponCode = c.Code
	w.OwnerID = ownerID
	err = tx.QueryRow(ctx, `
		INSERT INTO winners (id, owner_id, coupon_id, prize_id, customer_name, contact)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING redeemed_at
	`, w.ID, w.OwnerID, w.CouponID, w.PrizeID, w.CustomerName, w.Contact).Scan(&w.RedeemedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record winner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit redemption: %w", err)
	}
	return &c, nil
}

// ListByOwner returns the owner's coupons, newest first.
func (r *CouponRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Coupon, error) {
	query := `
		SELECT id, code, owner_id, prize_id, prize_type, status, expiry_date, created_at
		FROM coupons WHERE owner_id = $1 ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.OwnerID, &c.PrizeID, &c.PrizeType, &c.Status, &c.ExpiryDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}
	return coupons, nil
}

// DeleteByOwner removes all of the owner's coupons and returns the count.
// Dependent winners go with them via the store's cascade.
func (r *CouponRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete coupons: %w", err)
	}
	return tag.RowsAffected(), nil
}
