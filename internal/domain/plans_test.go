package domain

import "testing"

func TestCouponLimitPerTier(t *testing.T) {
	if got := CouponLimit(false); got != FreeCouponLimit {
		t.Errorf("free limit = %d, want %d", got, FreeCouponLimit)
	}
	if got := CouponLimit(true); got != MonthlyCouponLimit {
		t.Errorf("paid limit = %d, want %d", got, MonthlyCouponLimit)
	}
}

func TestRemainingQuota(t *testing.T) {
	tests := []struct {
		name    string
		active  bool
		created int
		want    int
	}{
		{"free untouched", false, 0, FreeCouponLimit},
		{"free partially used", false, 7, 3},
		{"free at limit", false, FreeCouponLimit, 0},
		{"free over limit never negative", false, FreeCouponLimit + 5, 0},
		{"paid partially used", true, 100, MonthlyCouponLimit - 100},
		{"paid over limit never negative", true, MonthlyCouponLimit + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingQuota(tt.active, tt.created); got != tt.want {
				t.Errorf("RemainingQuota(%v, %d) = %d, want %d", tt.active, tt.created, got, tt.want)
			}
		})
	}
}

func TestHasQuota(t *testing.T) {
	if !HasQuota(false, FreeCouponLimit-1) {
		t.Error("one below the limit should still have quota")
	}
	if HasQuota(false, FreeCouponLimit) {
		t.Error("at the limit there is no quota left")
	}
}

func TestShowUpgradePrompt(t *testing.T) {
	if ShowUpgradePrompt(false, FreeCouponLimit-1) {
		t.Error("prompt shown below the limit")
	}
	if !ShowUpgradePrompt(false, FreeCouponLimit) {
		t.Error("prompt not shown at the limit")
	}
	if ShowUpgradePrompt(true, FreeCouponLimit) {
		t.Error("paid tier prompted at the free threshold")
	}
}
