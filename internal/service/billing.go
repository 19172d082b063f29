package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spinwin/backend/internal/domain"
)

// BillingService records manually-reported payments and turns staff
// confirmations into subscription time. There is no gateway integration;
// a claim is just the customer's word until staff confirm it.
type BillingService struct {
	claims   ClaimStore
	subs     SubscriptionStore
	cipher   Cipher
	validate *validator.Validate
	now      func() time.Time
}

// NewBillingService creates a new BillingService.
func NewBillingService(claims ClaimStore, subs SubscriptionStore, cipher Cipher) *BillingService {
	return &BillingService{
		claims:   claims,
		subs:     subs,
		cipher:   cipher,
		validate: validator.New(),
		now:      time.Now,
	}
}

// SubmitClaim records an unconfirmed payment claim. The UPI ID is encrypted
// before it reaches the store.
func (s *BillingService) SubmitClaim(ctx context.Context, accountID string, req *domain.ClaimRequest) (*domain.PaymentClaim, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	sealed, err := s.cipher.Encrypt([]byte(req.UPIID))
	if err != nil {
		return nil, domain.ErrInternal("failed to encrypt payment id", err)
	}

	claim := &domain.PaymentClaim{
		ID:        uuid.New().String(),
		AccountID: accountID,
		UPIName:   req.UPIName,
		UPIID:     sealed,
		CreatedAt: s.now(),
	}
	if err := s.claims.Insert(ctx, claim); err != nil {
		return nil, domain.ErrInternal("failed to save payment claim", err)
	}

	claim.UPIID = req.UPIID
	return claim, nil
}

// ListClaims returns all claims for the staff surface, UPI IDs decrypted.
func (s *BillingService) ListClaims(ctx context.Context) ([]domain.PaymentClaim, error) {
	claims, err := s.claims.ListAll(ctx)
	if err != nil {
		return nil, domain.ErrInternal("failed to list payment claims", err)
	}
	for i := range claims {
		plain, err := s.cipher.Decrypt(claims[i].UPIID)
		if err != nil {
			// Legacy rows may predate encryption; show them as stored.
			continue
		}
		claims[i].UPIID = string(plain)
	}
	return claims, nil
}

// Confirm marks one claim confirmed and activates or extends the claimant's
// subscription: inactive or expired restarts at today+30 days, active and
// unexpired gains 30 more days. Confirming an already-confirmed claim is a
// no-op and returns the subscription unchanged.
func (s *BillingService) Confirm(ctx context.Context, claimID string) (*domain.Subscription, error) {
	sub, _, err := s.claims.Confirm(ctx, claimID, s.now())
	if err != nil {
		if _, ok := domain.AsAppError(err); ok {
			return nil, err
		}
		return nil, domain.ErrInternal("failed to confirm payment claim", err)
	}
	return sub, nil
}

// ConfirmBulk confirms many claims with per-claim isolation: one claim's
// failure never blocks the rest. Returns how many were newly confirmed.
func (s *BillingService) ConfirmBulk(ctx context.Context, req *domain.BulkConfirmRequest) (*domain.BulkConfirmResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	resp := &domain.BulkConfirmResponse{}
	for _, id := range req.ClaimIDs {
		_, applied, err := s.claims.Confirm(ctx, id, s.now())
		if err != nil {
			resp.Failed = append(resp.Failed, id)
			continue
		}
		if applied {
			resp.Confirmed++
		}
	}
	return resp, nil
}

// Subscription returns the account's current plan state.
func (s *BillingService) Subscription(ctx context.Context, accountID string) (*domain.Subscription, error) {
	sub, err := s.subs.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load subscription", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound("subscription not found")
	}
	return sub, nil
}
