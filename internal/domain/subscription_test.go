package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubscriptionIsActive(t *testing.T) {
	today := day(2026, 3, 10)
	future := day(2026, 3, 20)
	past := day(2026, 3, 1)

	tests := []struct {
		name string
		sub  *Subscription
		want bool
	}{
		{"nil subscription", nil, false},
		{"inert", &Subscription{}, false},
		{"flag without expiry", &Subscription{Active: true}, false},
		{"expiry without flag", &Subscription{ExpiresOn: &future}, false},
		{"active unexpired", &Subscription{Active: true, ExpiresOn: &future}, true},
		{"expires today still counts", &Subscription{Active: true, ExpiresOn: &today}, true},
		{"lapsed", &Subscription{Active: true, ExpiresOn: &past}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.IsActive(today); got != tt.want {
				t.Errorf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsActiveIgnoresTimeOfDay(t *testing.T) {
	expires := day(2026, 3, 10)
	sub := &Subscription{Active: true, ExpiresOn: &expires}
	lateInTheDay := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if !sub.IsActive(lateInTheDay) {
		t.Error("subscription expiring today went inactive before midnight")
	}
}

func TestExtendStartsFreshWindow(t *testing.T) {
	sub := &Subscription{}
	sub.Extend(time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC))

	if !sub.Active {
		t.Error("not active after extend")
	}
	want := day(2026, 4, 9)
	if sub.ExpiresOn == nil || !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v, want %v", sub.ExpiresOn, want)
	}
}

func TestExtendStacksOnActiveSubscription(t *testing.T) {
	expires := day(2026, 4, 9)
	sub := &Subscription{Active: true, ExpiresOn: &expires}
	sub.Extend(day(2026, 3, 10))

	want := day(2026, 5, 9)
	if !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v, want stacked %v", sub.ExpiresOn, want)
	}
}

func TestExtendAfterLapseRestartsFromToday(t *testing.T) {
	expired := day(2026, 1, 5)
	sub := &Subscription{Active: true, ExpiresOn: &expired}
	sub.Extend(day(2026, 3, 10))

	want := day(2026, 4, 9)
	if !sub.ExpiresOn.Equal(want) {
		t.Errorf("expires on %v after lapse, want %v", sub.ExpiresOn, want)
	}
}

func TestCouponIsExpired(t *testing.T) {
	today := day(2026, 3, 10)
	yesterday := day(2026, 3, 9)
	tomorrow := day(2026, 3, 11)

	if (&Coupon{}).IsExpired(today) {
		t.Error("coupon without expiry date reported expired")
	}
	if (&Coupon{ExpiryDate: &tomorrow}).IsExpired(today) {
		t.Error("future-dated coupon reported expired")
	}
	if (&Coupon{ExpiryDate: &today}).IsExpired(today) {
		t.Error("coupon expiring today should still redeem")
	}
	if !(&Coupon{ExpiryDate: &yesterday}).IsExpired(today) {
		t.Error("past-dated coupon not reported expired")
	}
}
