package handler

import (
	"net/http"

	"cardaloom/internal/model"
	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// TenantHandler handles authenticated tenant profile requests.
type TenantHandler struct {
	service service.TenantService
	logger  zerolog.Logger
}

// NewTenantHandler creates a new tenant handler.
func NewTenantHandler(service service.TenantService, logger zerolog.Logger) *TenantHandler {
	return &TenantHandler{
		service: service,
		logger:  logger.With().Str("handler", "tenant").Logger(),
	}
}

// Get handles GET /api/tenant requests.
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	tenant, err := h.service.GetProfile(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}

// Update handles PUT /api/tenant requests.
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return
	}

	var req model.TenantUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	tenant, err := h.service.UpdateProfile(r.Context(), accountID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, tenant)
}
