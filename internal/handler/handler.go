package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"reyan-luxe/internal/model"

	"github.com/rs/zerolog"
)

// statusForCode maps domain error codes to HTTP statuses.
var statusForCode = map[string]int{
	model.ErrCodeInvalidJSON:         http.StatusBadRequest,
	model.ErrCodeMissingField:        http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:     http.StatusBadRequest,
	model.ErrCodeSignatureInvalid:    http.StatusBadRequest,
	model.ErrCodeTransitionForbidden: http.StatusBadRequest,
	model.ErrCodeNotCancellable:      http.StatusBadRequest,
	model.ErrCodeInvalidOTP:          http.StatusBadRequest,
	model.ErrCodeExpiredOTP:          http.StatusBadRequest,
	model.ErrCodeOrderNotFound:       http.StatusNotFound,
	model.ErrCodeProductNotFound:     http.StatusNotFound,
	model.ErrCodeUserNotFound:        http.StatusNotFound,
	model.ErrCodeDuplicateOrder:      http.StatusConflict,
	model.ErrCodeUnauthorised:        http.StatusUnauthorized,
	model.ErrCodeGatewayFailure:      http.StatusBadGateway,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already gone; nothing useful left to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a service error to an HTTP response. Domain errors
// keep their message; anything else becomes an opaque 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusForCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}
