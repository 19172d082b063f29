package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spinwin/backend/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CouponService implements the coupon lifecycle: issuance under quota,
// read-only validation, and the atomic redeem transition.
type CouponService struct {
	coupons   CouponStore
	owners    OwnerStore
	prizes    PrizeStore
	winners   WinnerStore
	subs      SubscriptionStore
	publisher WinnerPublisher
	validate  *validator.Validate
	now       func() time.Time
}

// NewCouponService creates a new CouponService. publisher may be nil.
func NewCouponService(
	coupons CouponStore,
	owners OwnerStore,
	prizes PrizeStore,
	winners WinnerStore,
	subs SubscriptionStore,
	publisher WinnerPublisher,
) *CouponService {
	return &CouponService{
		coupons:   coupons,
		owners:    owners,
		prizes:    prizes,
		winners:   winners,
		subs:      subs,
		publisher: publisher,
		validate:  validator.New(),
		now:       time.Now,
	}
}

func (s *CouponService) ownerByAccount(ctx context.Context, accountID string) (*domain.ShopOwner, error) {
	owner, err := s.owners.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load shop owner", err)
	}
	if owner == nil {
		return nil, domain.ErrNotFound("user profile not found")
	}
	return owner, nil
}

// Issue creates req.Quantity coupons for the account's shop owner, after
// recomputing the quota from the live coupon count. On rejection the exact
// remaining allowance is reported.
func (s *CouponService) Issue(ctx context.Context, accountID string, req *domain.IssueRequest) (*domain.IssueResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	quota, err := s.quotaFor(ctx, owner)
	if err != nil {
		return nil, err
	}
	if req.Quantity > quota.Remaining {
		return nil, domain.ErrQuotaExceeded(quota.Remaining)
	}

	codes := make([]string, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		code, err := s.insertWithFreshCode(ctx, owner.ID, req)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	// Lifetime counter, separate from the live count the quota uses.
	if err := s.owners.AddCouponsCreated(ctx, owner.ID, req.Quantity); err != nil {
		return nil, domain.ErrInternal("failed to update coupon counter", err)
	}

	return &domain.IssueResponse{Codes: codes}, nil
}

// insertWithFreshCode generates codes until one lands. Collisions are
// resolved by the store's uniqueness constraint, not application locking;
// with 36^8 possible codes the retry loop terminates with overwhelming
// probability long before it matters.
func (s *CouponService) insertWithFreshCode(ctx context.Context, ownerID string, req *domain.IssueRequest) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", domain.ErrInternal("issuance cancelled", err)
		}
		c := &domain.Coupon{
			ID:         uuid.New().String(),
			Code:       generateCode(),
			OwnerID:    ownerID,
			PrizeType:  req.PrizeType,
			Status:     domain.CouponActive,
			ExpiryDate: req.ExpiryDate,
			CreatedAt:  s.now(),
		}
		ok, err := s.coupons.Insert(ctx, c)
		if err != nil {
			return "", domain.ErrInternal("failed to save coupon", err)
		}
		if ok {
			return c.Code, nil
		}
	}
}

func generateCode() string {
	b := make([]byte, domain.CouponCodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}

// Validate checks a coupon without mutating it. An expired coupon reports
// invalid but its stored status stays Active; expiry is a lazy, read-time
// determination.
func (s *CouponService) Validate(ctx context.Context, accountID, code string) (*domain.ValidationResult, error) {
	if code == "" {
		return &domain.ValidationResult{Valid: false, Message: "coupon code is required"}, nil
	}

	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	c, err := s.coupons.FindActive(ctx, owner.ID, code)
	if err != nil {
		return nil, domain.ErrInternal("failed to look up coupon", err)
	}
	if c == nil {
		return &domain.ValidationResult{Valid: false, Message: "coupon invalid, used, or not owned"}, nil
	}
	if c.IsExpired(s.now()) {
		return &domain.ValidationResult{Valid: false, Message: "coupon expired"}, nil
	}
	return &domain.ValidationResult{Valid: true, Message: "coupon is valid"}, nil
}

// Redeem marks a coupon used and records the winner against an explicitly
// chosen prize. The check-and-set runs inside one store transaction, so a
// coupon can never be redeemed twice even under concurrent requests.
func (s *CouponService) Redeem(ctx context.Context, req *domain.RedeemRequest) (*domain.Winner, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	owner, err := s.owners.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load shop owner", err)
	}
	if owner == nil {
		return nil, domain.ErrCouponNotRedeemable()
	}

	prize, err := s.prizes.FindByOwner(ctx, owner.ID, req.PrizeID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load prize", err)
	}
	if prize == nil {
		return nil, domain.ErrNotFound("prize does not exist")
	}

	return s.redeem(ctx, owner.ID, req.Code, prize, req.CustomerName, req.Contact)
}

// SpinAndRedeem picks the prize uniformly at random from the owner's prize
// set, then performs the identical atomic redeem.
func (s *CouponService) SpinAndRedeem(ctx context.Context, accountID string, req *domain.SpinRequest) (*domain.SpinResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	prizes, err := s.prizes.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to list prizes", err)
	}
	if len(prizes) == 0 {
		return nil, domain.ErrNoPrizesAvailable()
	}

	idx := rand.IntN(len(prizes))
	prize := prizes[idx]

	winner, err := s.redeem(ctx, owner.ID, req.Code, &prize, req.CustomerName, req.Contact)
	if err != nil {
		return nil, err
	}

	return &domain.SpinResult{Winner: winner, Prize: &prize, WinningIndex: idx}, nil
}

func (s *CouponService) redeem(ctx context.Context, ownerID, code string, prize *domain.Prize, name, contact string) (*domain.Winner, error) {
	winner := &domain.Winner{
		ID:           uuid.New().String(),
		PrizeID:      &prize.ID,
		PrizeName:    prize.Name,
		CustomerName: name,
		Contact:      contact,
	}

	c, err := s.coupons.Redeem(ctx, ownerID, code, winner)
	if err != nil {
		return nil, domain.ErrInternal("failed to redeem coupon", err)
	}
	if c == nil {
		return nil, domain.ErrCouponNotRedeemable()
	}

	if s.publisher != nil {
		s.publisher.PublishWinner(ownerID, winner)
	}
	return winner, nil
}

// List returns the account owner's coupons, newest first.
func (s *CouponService) List(ctx context.Context, accountID string) ([]domain.Coupon, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	coupons, err := s.coupons.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to list coupons", err)
	}
	return coupons, nil
}

// Winners returns the account owner's redemption history, newest first.
func (s *CouponService) Winners(ctx context.Context, accountID string) ([]domain.Winner, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	winners, err := s.winners.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to list winners", err)
	}
	return winners, nil
}

// DeleteAll removes all coupons belonging to the account's shop owner and
// returns the count. Staff invoke it with any account ID; owners with their
// own. Dependent winners are removed by the store's cascade.
func (s *CouponService) DeleteAll(ctx context.Context, accountID string) (int64, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	count, err := s.coupons.DeleteByOwner(ctx, owner.ID)
	if err != nil {
		return 0, domain.ErrInternal("failed to delete coupons", err)
	}
	return count, nil
}
