package handler

import (
	"net/http"

	"cardaloom/internal/model"
	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// UploadHandler handles image uploads and management.
type UploadHandler struct {
	tenants service.TenantService
	uploads service.UploadService
	maxSize int64
	logger  zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(tenants service.TenantService, uploads service.UploadService, maxSize int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		tenants: tenants,
		uploads: uploads,
		maxSize: maxSize,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

func (h *UploadHandler) taxID(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := requireAccount(w, r, h.logger)
	if !ok {
		return "", false
	}

	tenant, err := h.tenants.GetProfile(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return "", false
	}
	return tenant.TaxID, true
}

// Upload handles POST /api/images multipart requests. The file must be sent
// in the "file" part.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "multipart form with a file part is required", h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "file part is required", h.logger)
		return
	}
	defer file.Close()

	resp, err := h.uploads.Upload(r.Context(), taxID, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/images requests.
func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	images, err := h.uploads.List(r.Context(), taxID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, images)
}

// Delete handles DELETE /api/images/{id} requests.
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.uploads.Delete(r.Context(), taxID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
