package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// PrizeRepository handles database operations for prizes.
type PrizeRepository struct {
	db *pgxpool.Pool
}

// NewPrizeRepository creates a new PrizeRepository.
func NewPrizeRepository(db *pgxpool.Pool) *PrizeRepository {
	return &PrizeRepository{db: db}
}

// Create inserts a new prize.
func (r *PrizeRepository) Create(ctx context.Context, p *domain.Prize) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO prizes (id, owner_id, name, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.OwnerID, p.Name, p.ImageURL, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prize: %w", err)
	}
	return nil
}

// FindByOwner returns a prize by ID only if it belongs to the given owner.
func (r *PrizeRepository) FindByOwner(ctx context.Context, ownerID, prizeID string) (*domain.Prize, error) {
	query := `SELECT id, owner_id, name, image_url, created_at FROM prizes WHERE id = $1 AND owner_id = $2`
	row := r.db.QueryRow(ctx, query, prizeID, ownerID)

	var p domain.Prize
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find prize: %w", err)
	}
	return &p, nil
}

// ListByOwner returns the owner's prizes, newest first.
func (r *PrizeRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Prize, error) {
	query := `SELECT id, owner_id, name, image_url, created_at FROM prizes WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	defer rows.Close()

	var prizes []domain.Prize
	for rows.Next() {
		var p domain.Prize
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prize: %w", err)
		}
		prizes = append(prizes, p)
	}
	return prizes, nil
}

// Update changes a prize's name and, when non-empty, its image.
func (r *PrizeRepository) Update(ctx context.Context, p *domain.Prize) error {
	_, err := r.db.Exec(ctx, `
		UPDATE prizes SET name = $1, image_url = CASE WHEN $2 <> '' THEN $2 ELSE image_url END
		WHERE id = $3 AND owner_id = $4
	`, p.Name, p.ImageURL, p.ID, p.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update prize: %w", err)
	}
	return nil
}

// Delete removes an owner's prize. Returns false when nothing matched.
func (r *PrizeRepository) Delete(ctx context.Context, ownerID, prizeID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM prizes WHERE id = $1 AND owner_id = $2`, prizeID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete prize: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
