package domain

import "time"

// Winner is the immutable record of one successful redemption. Exactly one
// exists per redeemed coupon; it is never mutated or deleted by normal flow.
type Winner struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	CouponID     string    `json:"couponId"`
	CouponCode   string    `json:"couponCode,omitempty"`
	PrizeID      *string   `json:"prizeId,omitempty"`
	PrizeName    string    `json:"prizeName,omitempty"`
	CustomerName string    `json:"customerName"`
	Contact      string    `json:"contact"`
	RedeemedAt   time.Time `json:"redeemedAt"`
}
