package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// OwnerRepository handles database operations for shop-owner profiles.
type OwnerRepository struct {
	db *pgxpool.Pool
}

// NewOwnerRepository creates a new OwnerRepository.
func NewOwnerRepository(db *pgxpool.Pool) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// FindByAccount returns the shop-owner profile for an account.
func (r *OwnerRepository) FindByAccount(ctx context.Context, accountID string) (*domain.ShopOwner, error) {
	return r.findOne(ctx, `WHERE account_id = $1`, accountID)
}

// FindByID returns a shop-owner profile by its own ID.
func (r *OwnerRepository) FindByID(ctx context.Context, id string) (*domain.ShopOwner, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *OwnerRepository) findOne(ctx context.Context, where string, arg any) (*domain.ShopOwner, error) {
	query := `SELECT id, account_id, image_url, total_coupons_created, created_at FROM shop_owners ` + where
	row := r.db.QueryRow(ctx, query, arg)

	var o domain.ShopOwner
	err := row.Scan(&o.ID, &o.AccountID, &o.ImageURL, &o.TotalCouponsCreated, &o.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shop owner: %w", err)
	}
	return &o, nil
}

// AddCouponsCreated bumps the lifetime issuance counter.
func (r *OwnerRepository) AddCouponsCreated(ctx context.Context, ownerID string, n int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE shop_owners SET total_coupons_created = total_coupons_created + $1 WHERE id = $2`,
		n, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon counter: %w", err)
	}
	return nil
}
