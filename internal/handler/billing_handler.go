package handler

import (
	"net/http"

	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// BillingHandler handles authenticated billing requests.
type BillingHandler struct {
	service service.BillingService
	logger  zerolog.Logger
}

// NewBillingHandler creates a new billing handler.
func NewBillingHandler(service service.BillingService, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		logger:  logger.With().Str("handler", "billing").Logger(),
	}
}

// sessionRequest is the payload for POST /api/billing/session.
type sessionRequest struct {
	PriceID string `json:"priceId"`
}

// cancelRequest is the payload for POST /api/billing/cancel.
type cancelRequest struct {
	Cancel bool `json:"cancel"`
}

// StartSession handles POST /api/billing/session requests.
func (h *BillingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	session, err := h.service.StartSession(r.Context(), accountID, req.PriceID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Sync handles POST /api/billing/sync requests.
func (h *BillingHandler) Sync(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	tenant, err := h.service.Resync(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

// Cancel handles POST /api/billing/cancel requests.
func (h *BillingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	req := cancelRequest{Cancel: true}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
	}

	tenant, err := h.service.SetCancelAtPeriodEnd(r.Context(), accountID, req.Cancel)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

// ListInvoices handles GET /api/billing/invoices requests.
func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	invoices, err := h.service.ListInvoices(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, invoices)
}
