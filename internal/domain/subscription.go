package domain

import "time"

// PlanPeriodDays is the window a single confirmed payment buys.
const PlanPeriodDays = 30

// Subscription is the plan state for an Account, 1:1. It is created inert
// (inactive, no expiry) at registration and only ever activated or extended
// by payment confirmation.
type Subscription struct {
	AccountID string     `json:"accountId"`
	Active    bool       `json:"active"`
	ExpiresOn *time.Time `json:"expiresOn,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsActive reports whether the paid package applies on the given day.
// Both the flag and an unexpired date are required.
func (s *Subscription) IsActive(today time.Time) bool {
	if s == nil || !s.Active || s.ExpiresOn == nil {
		return false
	}
	return !s.ExpiresOn.Before(truncateToDay(today))
}

// Extend applies one confirmed payment. An inactive or already-expired
// subscription restarts at today+30d; an active, unexpired one gains 30
// more days on top of its current expiry, so stacked purchases accumulate.
func (s *Subscription) Extend(today time.Time) {
	day := truncateToDay(today)
	if s.IsActive(today) {
		next := s.ExpiresOn.AddDate(0, 0, PlanPeriodDays)
		s.ExpiresOn = &next
	} else {
		next := day.AddDate(0, 0, PlanPeriodDays)
		s.ExpiresOn = &next
	}
	s.Active = true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
