package handler

import (
	"encoding/csv"
	"log"
	"net/http"
	"strings"

	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/service"
)

// CouponHandler exposes the coupon lifecycle over HTTP.
type CouponHandler struct {
	svc *service.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(svc *service.CouponService) *CouponHandler {
	return &CouponHandler{svc: svc}
}

// Issue handles POST /api/coupons.
func (h *CouponHandler) Issue(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.IssueRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	resp, err := h.svc.Issue(r.Context(), accountID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, resp)
}

// List handles GET /api/coupons.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	coupons, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, coupons)
}

// Export handles GET /api/coupons/export, streaming the owner's coupons as CSV.
func (h *CouponHandler) Export(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	coupons, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="coupons.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Code", "Prize", "Expiry Date", "Status", "Created At"}); err != nil {
		log.Printf("failed to write coupon export: %v", err)
		return
	}
	for _, c := range coupons {
		expiry := ""
		if c.ExpiryDate != nil {
			expiry = c.ExpiryDate.Format("2006-01-02")
		}
		row := []string{c.Code, c.PrizeType, expiry, c.Status, c.CreatedAt.Format("2006-01-02 15:04:05")}
		if err := cw.Write(row); err != nil {
			log.Printf("failed to write coupon export: %v", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("failed to write coupon export: %v", err)
	}
}

// Validate handles GET /api/coupons/validate?coupon=CODE. Read-only.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("coupon"))
	result, err := h.svc.Validate(r.Context(), accountID, code)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// Redeem handles POST /api/redeem. Public: the owner is named in the body,
// since the customer scanning a shop's QR code has no session.
func (h *CouponHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req domain.RedeemRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	winner, err := h.svc.Redeem(r.Context(), &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{"success": true, "winner": winner})
}

// Spin handles POST /api/coupons/spin for the authenticated owner's device.
func (h *CouponHandler) Spin(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.SpinRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	result, err := h.svc.SpinAndRedeem(r.Context(), accountID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, result)
}

// DeleteAll handles DELETE /api/coupons.
func (h *CouponHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	count, err := h.svc.DeleteAll(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]int64{"deleted": count})
}

// Winners handles GET /api/winners, the owner's redemption history.
func (h *CouponHandler) Winners(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	winners, err := h.svc.Winners(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, winners)
}

// Dashboard handles GET /api/dashboard.
func (h *CouponHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.Dashboard(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, stats)
}
