package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"orders-service/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a workflow error onto an HTTP status and a stable
// error body. Storage detail never reaches the response.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var status int
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		status = http.StatusNotFound
	// Transport failures outrank the creation wrapper: an order rejected
	// because the product service is unreachable is retryable, not invalid.
	case errors.Is(err, model.ErrProductServiceUnavailable):
		writeError(w, http.StatusBadGateway,
			model.ErrProductServiceUnavailable.Code, model.ErrProductServiceUnavailable.Message, logger)
		return
	case errors.Is(err, model.ErrOrderCreation),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrInvalidStatus):
		status = http.StatusBadRequest
	default:
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	writeError(w, status, model.ErrCodeInternalError, "internal server error", logger)
}
