package service

import (
	"context"
	"time"

	"github.com/spinwin/backend/internal/domain"
)

// Store interfaces are declared here, on the consumer side, so services can
// be exercised against in-memory fakes. The pgx-backed repositories satisfy
// them.

// AccountStore persists accounts and registration.
type AccountStore interface {
	CreateOwner(ctx context.Context, a *domain.Account, owner *domain.ShopOwner) error
	Create(ctx context.Context, a *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// OwnerStore resolves shop-owner profiles and the lifetime issuance counter.
type OwnerStore interface {
	FindByAccount(ctx context.Context, accountID string) (*domain.ShopOwner, error)
	FindByID(ctx context.Context, id string) (*domain.ShopOwner, error)
	AddCouponsCreated(ctx context.Context, ownerID string, n int) error
}

// CouponStore persists coupons. Insert reports a code collision as
// (false, nil); Redeem is the atomic check-and-set and reports a lost race
// as (nil, nil).
type CouponStore interface {
	Insert(ctx context.Context, c *domain.Coupon) (bool, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	CountUsedByOwner(ctx context.Context, ownerID string) (int, error)
	FindActive(ctx context.Context, ownerID, code string) (*domain.Coupon, error)
	Redeem(ctx context.Context, ownerID, code string, w *domain.Winner) (*domain.Coupon, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Coupon, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// PrizeStore persists prizes, always owner-scoped.
type PrizeStore interface {
	Create(ctx context.Context, p *domain.Prize) error
	FindByOwner(ctx context.Context, ownerID, prizeID string) (*domain.Prize, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Prize, error)
	Update(ctx context.Context, p *domain.Prize) error
	Delete(ctx context.Context, ownerID, prizeID string) (bool, error)
}

// WinnerStore reads redemption records.
type WinnerStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Winner, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// SubscriptionStore reads plan state.
type SubscriptionStore interface {
	FindByAccount(ctx context.Context, accountID string) (*domain.Subscription, error)
}

// ClaimStore persists payment claims. Confirm applies one claim atomically
// and reports an already-confirmed claim as applied=false.
type ClaimStore interface {
	Insert(ctx context.Context, c *domain.PaymentClaim) error
	ListAll(ctx context.Context) ([]domain.PaymentClaim, error)
	Confirm(ctx context.Context, claimID string, now time.Time) (*domain.Subscription, bool, error)
}

// Cipher encrypts payment identifiers at rest.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(encoded string) ([]byte, error)
}

// WinnerPublisher pushes redemption events to live listeners. Optional.
type WinnerPublisher interface {
	PublishWinner(ownerID string, w *domain.Winner)
}
