package handler

import (
	"net/http"

	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/service"
)

// PaymentHandler exposes payment claims and subscription state to owners.
type PaymentHandler struct {
	svc *service.BillingService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.BillingService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// SubmitClaim handles POST /api/payment/claim.
func (h *PaymentHandler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.ClaimRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	claim, err := h.svc.SubmitClaim(r.Context(), accountID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, claim)
}

// GetSubscription handles GET /api/payment/subscription.
func (h *PaymentHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	sub, err := h.svc.Subscription(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, sub)
}
