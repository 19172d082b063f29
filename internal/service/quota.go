package service

import (
	"context"
	"time"

	"github.com/spinwin/backend/internal/domain"
)

// Quota is a point-in-time view of an owner's issuance allowance. It is
// recomputed from the live coupon count on every request, never cached.
type Quota struct {
	PackageActive     bool       `json:"packageActive"`
	Limit             int        `json:"limit"`
	Created           int        `json:"created"`
	Remaining         int        `json:"remaining"`
	ShowUpgradePrompt bool       `json:"showUpgradePrompt"`
	PlanExpiration    *time.Time `json:"planExpiration,omitempty"`
}

func (s *CouponService) quotaFor(ctx context.Context, owner *domain.ShopOwner) (*Quota, error) {
	sub, err := s.subs.FindByAccount(ctx, owner.AccountID)
	if err != nil {
		return nil, domain.ErrInternal("failed to load subscription", err)
	}

	active := sub.IsActive(s.now())
	created, err := s.coupons.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to count coupons", err)
	}

	q := &Quota{
		PackageActive:     active,
		Limit:             domain.CouponLimit(active),
		Created:           created,
		Remaining:         domain.RemainingQuota(active, created),
		ShowUpgradePrompt: domain.ShowUpgradePrompt(active, created),
	}
	if sub != nil {
		q.PlanExpiration = sub.ExpiresOn
	}
	return q, nil
}

// Quota returns the account owner's current allowance.
func (s *CouponService) Quota(ctx context.Context, accountID string) (*Quota, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.quotaFor(ctx, owner)
}

// DashboardStats is the owner dashboard summary.
type DashboardStats struct {
	Quota               *Quota `json:"quota"`
	CouponsUsed         int    `json:"couponsUsed"`
	PrizesRedeemed      int    `json:"prizesRedeemed"`
	TotalCouponsCreated int    `json:"totalCouponsCreated"`
}

// Dashboard aggregates the counts the owner dashboard shows.
func (s *CouponService) Dashboard(ctx context.Context, accountID string) (*DashboardStats, error) {
	owner, err := s.ownerByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	quota, err := s.quotaFor(ctx, owner)
	if err != nil {
		return nil, err
	}

	used, err := s.coupons.CountUsedByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to count used coupons", err)
	}

	redeemed, err := s.winners.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, domain.ErrInternal("failed to count winners", err)
	}

	return &DashboardStats{
		Quota:               quota,
		CouponsUsed:         used,
		PrizesRedeemed:      redeemed,
		TotalCouponsCreated: owner.TotalCouponsCreated,
	}, nil
}
