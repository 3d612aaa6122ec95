package handler

import (
	"io"
	"net/http"

	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// maxWebhookBody caps webhook payload reads.
const maxWebhookBody = 1 << 20

// signatureHeader is the provider's webhook signature header.
const signatureHeader = "Stripe-Signature"

// WebhookHandler receives billing provider webhook deliveries.
type WebhookHandler struct {
	service service.BillingService
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service service.BillingService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

// Handle handles POST /api/webhooks/billing requests. The raw body is passed
// through untouched; signature verification needs the exact bytes.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "failed to read request body", h.logger)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader)); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusOK)
}
