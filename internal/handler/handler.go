package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"pizza-storefront/internal/backend"
	"pizza-storefront/internal/middleware"
	"pizza-storefront/internal/model"

	"github.com/rs/zerolog"
)

// AuthRedirect is where the UI sends customers who must log in first.
const AuthRedirect = "/auth"

// maxBodySize bounds request bodies.
const maxBodySize = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).Str("message", message).Int("status", status).Msg("handler error")

	resp := model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.CorrelationIDFromContext(r.Context()),
	}
	if code == model.ErrCodeAuthRequired {
		resp.Redirect = AuthRedirect
	}
	writeJSON(w, status, resp)
}

// respondError maps a service error to a status code and writes it.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	}
	writeError(w, r, status, code, message, logger)
}

func classify(err error) (int, string, string) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		return domainStatus(domainErr.Code), domainErr.Code, domainErr.Message
	}

	if errors.Is(err, backend.ErrUnavailable) {
		return http.StatusServiceUnavailable, model.ErrCodeBackendUnavailable, "the pizzeria cannot be reached, please retry"
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "the request was refused, please retry"
		}
		return http.StatusBadGateway, model.ErrCodeBackendRejected, message
	}

	return http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error"
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeInvalidValue:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeProductUnavailable, model.ErrCodeEmptyCart, model.ErrCodeIllegalTransition,
		model.ErrCodeRejectNotArmed, model.ErrCodeCheckoutInProgress:
		return http.StatusConflict
	case model.ErrCodeAuthRequired, model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst unchanged
// when allowEmpty is set.
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pathID parses a positive integer path value.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewDomainError(model.ErrCodeInvalidValue, "invalid "+name)
	}
	return id, nil
}
