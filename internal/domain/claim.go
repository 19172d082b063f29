package domain

import "time"

// PaymentClaim is a manually-reported UPI payment awaiting staff
// confirmation. Confirmation is one-directional: once confirmed, a claim
// never reverts and re-confirming it has no effect.
type PaymentClaim struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"accountId"`
	UPIName     string     `json:"upiName"`
	UPIID       string     `json:"upiId"`
	Confirmed   bool       `json:"confirmed"`
	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}

// ClaimRequest is the input for reporting a payment.
type ClaimRequest struct {
	UPIName string `json:"upiName" validate:"required,max=255"`
	UPIID   string `json:"upiId" validate:"required,max=100"`
}

// BulkConfirmRequest selects claims for batch confirmation.
type BulkConfirmRequest struct {
	ClaimIDs []string `json:"claimIds" validate:"required,min=1"`
}

// BulkConfirmResponse reports how many claims were newly confirmed.
// Already-confirmed and failed claims are skipped, not fatal.
type BulkConfirmResponse struct {
	Confirmed int      `json:"confirmed"`
	Failed    []string `json:"failed,omitempty"`
}
