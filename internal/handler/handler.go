// Package handler is the HTTP edge: request decoding, domain-error to
// status-code mapping, and response encoding. No business logic lives here.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cardaloom/internal/middleware"
	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a coded error response.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Int("status", status).Str("message", message).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service-layer error to an HTTP response. Domain
// errors carry their own code; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// statusForCode maps stable error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeTaxIDTaken, model.ErrCodeEmailTaken, model.ErrCodeShopClosed,
		model.ErrCodeCategoryInUse, model.ErrCodeNoSubscription:
		return http.StatusConflict
	case model.ErrCodeTenantNotFound, model.ErrCodeCategoryNotFound, model.ErrCodeProductNotFound,
		model.ErrCodeAddonNotFound, model.ErrCodeImageNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		// INVALID_JSON, MISSING_FIELD, INVALID_SIGNATURE, and anything new.
		return http.StatusBadRequest
	}
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is not valid JSON")
	}
	return nil
}

// requireAccount extracts the authenticated account id set by the auth
// middleware, answering 401 when it is absent.
func requireAccount(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "authentication required", logger)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, model.NewDomainError(model.ErrCodeMissingField, "a valid id is required in the path")
	}
	return id, nil
}
