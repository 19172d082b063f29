package domain

import "time"

// Coupon status values. A coupon is issued Active and moves to Used exactly
// once; the transition is one-directional. Expired is a logical state
// computed at read time from the expiry date and is never written back.
const (
	CouponActive  = "Active"
	CouponUsed    = "Used"
	CouponExpired = "Expired"
)

// CouponCodeLength is the fixed length of generated codes.
const CouponCodeLength = 8

// Coupon is a single-use redemption code owned by a shop owner. The code is
// globally unique across all tenants.
type Coupon struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	OwnerID    string     `json:"ownerId"`
	PrizeID    *string    `json:"prizeId,omitempty"`
	PrizeType  string     `json:"prizeType,omitempty"`
	Status     string     `json:"status"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// IsExpired reports whether the coupon's expiry date has passed. Coupons
// without an expiry date never expire.
func (c *Coupon) IsExpired(today time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(truncateToDay(today))
}

// IssueRequest is the input for batch coupon issuance.
type IssueRequest struct {
	Quantity   int        `json:"quantity" validate:"required,min=1"`
	PrizeType  string     `json:"prizeType" validate:"omitempty,max=50"`
	ExpiryDate *time.Time `json:"expiryDate"`
}

// IssueResponse returns the freshly created codes.
type IssueResponse struct {
	Codes []string `json:"codes"`
}

// ValidationResult is the outcome of a read-only coupon check.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// RedeemRequest is the input for redeeming a coupon against a chosen prize.
// OwnerID is explicit because redemption is reachable without a session.
type RedeemRequest struct {
	OwnerID      string `json:"ownerId" validate:"required"`
	Code         string `json:"coupon" validate:"required"`
	CustomerName string `json:"name" validate:"required,max=100"`
	Contact      string `json:"contact" validate:"required,max=20"`
	PrizeID      string `json:"prizeId" validate:"required"`
}

// SpinRequest is the input for the spin-and-win variant, where the prize is
// picked uniformly at random from the owner's prize set.
type SpinRequest struct {
	Code         string `json:"coupon" validate:"required"`
	CustomerName string `json:"name" validate:"required,max=100"`
	Contact      string `json:"contact" validate:"required,max=20"`
}

// SpinResult reports the awarded prize alongside the recorded winner.
// WinningIndex is the prize's position in the owner's wheel ordering.
type SpinResult struct {
	Winner       *Winner `json:"winner"`
	Prize        *Prize  `json:"prize"`
	WinningIndex int     `json:"winningIndex"`
}
