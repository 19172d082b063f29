package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations executes the initial schema migration.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS accounts (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL,
			email      TEXT NOT NULL,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL DEFAULT 'owner',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_username_ci ON accounts(LOWER(username));
		CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email_ci ON accounts(LOWER(email));

		CREATE TABLE IF NOT EXISTS shop_owners (
			id                    TEXT PRIMARY KEY,
			account_id            TEXT NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
			image_url             TEXT NOT NULL DEFAULT '',
			total_coupons_created INTEGER NOT NULL DEFAULT 0,
			created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS subscriptions (
			account_id TEXT PRIMARY KEY REFERENCES accounts(id) ON DELETE CASCADE,
			active     BOOLEAN NOT NULL DEFAULT FALSE,
			expires_on DATE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS prizes (
			id         TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL REFERENCES shop_owners(id) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			image_url  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_prizes_owner ON prizes(owner_id);

		CREATE TABLE IF NOT EXISTS coupons (
			id          TEXT PRIMARY KEY,
			code        TEXT NOT NULL UNIQUE,
			owner_id    TEXT NOT NULL REFERENCES shop_owners(id) ON DELETE CASCADE,
			prize_id    TEXT REFERENCES prizes(id) ON DELETE CASCADE,
			prize_type  TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'Active',
			expiry_date DATE,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_coupons_owner ON coupons(owner_id);
		CREATE INDEX IF NOT EXISTS idx_coupons_owner_status ON coupons(owner_id, status);

		CREATE TABLE IF NOT EXISTS winners (
			id            TEXT PRIMARY KEY,
			owner_id      TEXT NOT NULL REFERENCES shop_owners(id) ON DELETE CASCADE,
			coupon_id     TEXT NOT NULL REFERENCES coupons(id) ON DELETE CASCADE,
			prize_id      TEXT REFERENCES prizes(id) ON DELETE SET NULL,
			customer_name TEXT NOT NULL,
			contact       TEXT NOT NULL,
			redeemed_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_winners_coupon ON winners(coupon_id);
		CREATE INDEX IF NOT EXISTS idx_winners_owner ON winners(owner_id);

		CREATE TABLE IF NOT EXISTS payment_claims (
			id           TEXT PRIMARY KEY,
			account_id   TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			upi_name     TEXT NOT NULL,
			upi_id       TEXT NOT NULL,
			confirmed    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			confirmed_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_payment_claims_account ON payment_claims(account_id);
		CREATE INDEX IF NOT EXISTS idx_payment_claims_confirmed ON payment_claims(confirmed);
	`
	_, err := pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
