package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/service"
)

// AdminHandler is the staff surface: claim confirmation, platform stats and
// per-owner coupon cleanup.
type AdminHandler struct {
	db      *pgxpool.Pool
	billing *service.BillingService
	coupons *service.CouponService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *pgxpool.Pool, billing *service.BillingService, coupons *service.CouponService) *AdminHandler {
	return &AdminHandler{db: db, billing: billing, coupons: coupons}
}

// ListClaims handles GET /api/admin/claims.
func (h *AdminHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.billing.ListClaims(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, claims)
}

// ConfirmClaim handles POST /api/admin/claims/{id}/confirm.
func (h *AdminHandler) ConfirmClaim(w http.ResponseWriter, r *http.Request) {
	sub, err := h.billing.Confirm(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, sub)
}

// ConfirmClaimsBulk handles POST /api/admin/claims/confirm.
func (h *AdminHandler) ConfirmClaimsBulk(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkConfirmRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.billing.ConfirmBulk(r.Context(), &req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// DeleteOwnerCoupons handles DELETE /api/admin/owners/{accountId}/coupons,
// the staff override of the owner-scoped bulk delete.
func (h *AdminHandler) DeleteOwnerCoupons(w http.ResponseWriter, r *http.Request) {
	count, err := h.coupons.DeleteAll(r.Context(), chi.URLParam(r, "accountId"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

// GetStats handles GET /api/admin/stats.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	var owners, coupons, winners, pendingClaims int

	if err := h.db.QueryRow(r.Context(), "SELECT COUNT(*) FROM shop_owners").Scan(&owners); err != nil {
		log.Printf("Failed to count owners: %v", err)
	}
	if err := h.db.QueryRow(r.Context(), "SELECT COUNT(*) FROM coupons").Scan(&coupons); err != nil {
		log.Printf("Failed to count coupons: %v", err)
	}
	if err := h.db.QueryRow(r.Context(), "SELECT COUNT(*) FROM winners").Scan(&winners); err != nil {
		log.Printf("Failed to count winners: %v", err)
	}
	if err := h.db.QueryRow(r.Context(), "SELECT COUNT(*) FROM payment_claims WHERE confirmed = FALSE").Scan(&pendingClaims); err != nil {
		log.Printf("Failed to count pending claims: %v", err)
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"owners":        owners,
		"coupons":       coupons,
		"winners":       winners,
		"pendingClaims": pendingClaims,
	})
}
