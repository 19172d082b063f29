package domain

// Coupon allowances per tier. The paid allowance is per 30-day package
// period, enforced by counting the owner's current coupons rather than by
// a time window.
const (
	FreeCouponLimit    = 10
	MonthlyCouponLimit = 1000
)

// Plan describes a pricing tier.
type Plan struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CouponLimit  int    `json:"couponLimit"`
	PriceINR     int    `json:"priceInr"` // monthly price in rupees, 0 = free
	DurationDays int    `json:"durationDays"`
}

// AvailablePlans returns all pricing tiers.
func AvailablePlans() []Plan {
	return []Plan{
		{
			ID:           "free",
			Name:         "Free",
			CouponLimit:  FreeCouponLimit,
			PriceINR:     0,
			DurationDays: 0,
		},
		{
			ID:           "monthly",
			Name:         "Monthly Package",
			CouponLimit:  MonthlyCouponLimit,
			PriceINR:     499,
			DurationDays: PlanPeriodDays,
		},
	}
}

// CouponLimit returns the allowance for the owner's current tier.
func CouponLimit(packageActive bool) int {
	if packageActive {
		return MonthlyCouponLimit
	}
	return FreeCouponLimit
}

// RemainingQuota is the number of coupons an owner may still create given
// the tier and the current live coupon count. Never negative.
func RemainingQuota(packageActive bool, couponsCreated int) int {
	return max(0, CouponLimit(packageActive)-couponsCreated)
}

// HasQuota reports whether at least one more coupon may be created.
func HasQuota(packageActive bool, couponsCreated int) bool {
	return RemainingQuota(packageActive, couponsCreated) > 0
}

// ShowUpgradePrompt fires once the live count has reached the tier limit.
func ShowUpgradePrompt(packageActive bool, couponsCreated int) bool {
	return couponsCreated >= CouponLimit(packageActive)
}
