package handler

import (
	"net/http"

	"cardaloom/internal/model"
	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// PublicHandler handles the unauthenticated menu surface.
type PublicHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewPublicHandler creates a new public menu handler.
func NewPublicHandler(service service.MenuService, logger zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		service: service,
		logger:  logger.With().Str("handler", "public").Logger(),
	}
}

// Menu handles GET /api/public/menu?id=<taxId> requests.
func (h *PublicHandler) Menu(w http.ResponseWriter, r *http.Request) {
	taxID := r.URL.Query().Get("id")
	if taxID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "id query parameter is required", h.logger)
		return
	}

	menu, err := h.service.GetPublicMenu(r.Context(), taxID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, menu)
}

// OrderMessage handles POST /api/public/order-message requests.
func (h *PublicHandler) OrderMessage(w http.ResponseWriter, r *http.Request) {
	var req model.OrderMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	resp, err := h.service.ComposeOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
