package domain

import "time"

// ShopOwner is a coupon-issuing tenant, 1:1 with an Account. It owns its
// prizes, coupons and winners; deleting the owner cascades to all three.
type ShopOwner struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// TotalCouponsCreated is a lifetime counter, incremented on every
	// issuance and never decremented. It is distinct from the live coupon
	// count used for quota math.
	TotalCouponsCreated int `json:"totalCouponsCreated"`
}
