package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
)

// AccountRepository handles database operations for accounts.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateOwner inserts an account together with its shop-owner profile and an
// inert subscription, all in one transaction. The unique indexes on username
// and email back the pre-insert existence checks against races.
func (r *AccountRepository) CreateOwner(ctx context.Context, a *domain.Account, owner *domain.ShopOwner) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (id, username, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Username, a.Email, a.Password, a.Role, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO shop_owners (id, account_id, image_url, created_at)
		VALUES ($1, $2, $3, $4)
	`, owner.ID, a.ID, owner.ImageURL, owner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create shop owner: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO subscriptions (account_id, active, expires_on)
		VALUES ($1, FALSE, NULL)
	`, a.ID)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}
	return nil
}

// Create inserts a bare account (used for the seeded staff account).
func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, username, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Username, a.Email, a.Password, a.Role, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// FindByEmail returns an account by email, matched case-insensitively.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

// FindByID returns an account by ID.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *AccountRepository) findOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT id, username, email, password, role, created_at, updated_at FROM accounts ` + where
	row := r.db.QueryRow(ctx, query, arg)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Password, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &a, nil
}

// UsernameExists checks for a username, case-insensitively.
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(username) = LOWER($1))`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// EmailExists checks for an email, case-insensitively.
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
