package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spinwin/backend/internal/domain"
	"github.com/spinwin/backend/internal/service"
)

// PrizeHandler exposes prize management over HTTP.
type PrizeHandler struct {
	svc *service.PrizeService
}

// NewPrizeHandler creates a new PrizeHandler.
func NewPrizeHandler(svc *service.PrizeService) *PrizeHandler {
	return &PrizeHandler{svc: svc}
}

// List handles GET /api/prizes.
func (h *PrizeHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	prizes, err := h.svc.List(r.Context(), accountID)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, prizes)
}

// Create handles POST /api/prizes.
func (h *PrizeHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req domain.PrizeRequest
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	prize, err := h.svc.Add(r.Context(), accountID, &req)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusCreated, prize)
}

// Update handles PUT /api/prizes/{id}.
func (h *PrizeHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req struct {
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		Error(w, err)
		return
	}

	prize, err := h.svc.Update(r.Context(), accountID, chi.URLParam(r, "id"), req.Name, req.ImageURL)
	if err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, prize)
}

// Delete handles DELETE /api/prizes/{id}.
func (h *PrizeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := AccountID(r)
	if !ok {
		JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if err := h.svc.Delete(r.Context(), accountID, chi.URLParam(r, "id")); err != nil {
		Error(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
