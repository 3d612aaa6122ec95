package handler

import (
	"net/http"

	"cardaloom/internal/model"
	"cardaloom/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles authenticated catalog CRUD requests. Every request
// is scoped to the tenant owned by the authenticated account.
type CatalogHandler struct {
	tenants service.TenantService
	catalog service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(tenants service.TenantService, catalog service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		tenants: tenants,
		catalog: catalog,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// taxID resolves the tenant of the authenticated account.
func (h *CatalogHandler) taxID(w http.ResponseWriter, r *http.Request) (string, bool) {
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

// CreateCategory handles POST /api/categories requests.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), taxID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// ListCategories handles GET /api/categories requests.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	categories, err := h.catalog.ListCategories(r.Context(), taxID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/categories/{id} requests.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	category, err := h.catalog.UpdateCategory(r.Context(), taxID, id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/{id} requests.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.catalog.DeleteCategory(r.Context(), taxID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateAddon handles POST /api/addons requests.
func (h *CatalogHandler) CreateAddon(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	var req model.AddonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	addon, err := h.catalog.CreateAddon(r.Context(), taxID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, addon)
}

// ListAddons handles GET /api/addons requests.
func (h *CatalogHandler) ListAddons(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	addons, err := h.catalog.ListAddons(r.Context(), taxID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addons)
}

// UpdateAddon handles PUT /api/addons/{id} requests.
func (h *CatalogHandler) UpdateAddon(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.AddonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	addon, err := h.catalog.UpdateAddon(r.Context(), taxID, id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, addon)
}

// DeleteAddon handles DELETE /api/addons/{id} requests.
func (h *CatalogHandler) DeleteAddon(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.catalog.DeleteAddon(r.Context(), taxID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateProduct handles POST /api/products requests.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), taxID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /api/products requests.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), taxID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// UpdateProduct handles PUT /api/products/{id} requests.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	var req model.ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), taxID, id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id} requests.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	taxID, ok := h.taxID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), taxID, id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
