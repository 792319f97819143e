package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pizza-storefront/internal/backend"
	"pizza-storefront/internal/middleware"
	"pizza-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", model.ValidationError("name", "is required"), http.StatusBadRequest, model.ErrCodeMissingField},
		{"invalid json", model.NewDomainError(model.ErrCodeInvalidJSON, "bad"), http.StatusBadRequest, model.ErrCodeInvalidJSON},
		{"product not found", model.ErrProductNotFound, http.StatusNotFound, model.ErrCodeProductNotFound},
		{"order not found wrapped", fmt.Errorf("receipt: %w", model.ErrOrderNotFound), http.StatusNotFound, model.ErrCodeOrderNotFound},
		{"empty cart", model.ErrEmptyCart, http.StatusConflict, model.ErrCodeEmptyCart},
		{"checkout in progress", model.ErrCheckoutInProgress, http.StatusConflict, model.ErrCodeCheckoutInProgress},
		{"illegal transition", model.ErrIllegalTransition, http.StatusConflict, model.ErrCodeIllegalTransition},
		{"auth required", model.ErrAuthRequired, http.StatusUnauthorized, model.ErrCodeAuthRequired},
		{"invalid credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, model.ErrCodeInvalidCredentials},
		{"backend unavailable", fmt.Errorf("slots: %w", backend.ErrUnavailable), http.StatusServiceUnavailable, model.ErrCodeBackendUnavailable},
		{"backend rejected", &backend.APIError{StatusCode: 500, Message: "Errore"}, http.StatusBadGateway, model.ErrCodeBackendRejected},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, message := classify(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestClassify_HidesInternalErrors(t *testing.T) {
	_, _, message := classify(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", message)
}

func TestClassify_KeepsServerMessage(t *testing.T) {
	_, _, message := classify(&backend.APIError{StatusCode: 400, Message: "Slot non disponibile"})
	assert.Equal(t, "Slot non disponibile", message)
}

func TestRespondError_AuthRequiredRedirect(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, model.ErrAuthRequired, zerolog.Nop())
	})
	handler = middleware.CorrelationID(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	req.Header.Set(middleware.CorrelationHeader, "corr-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeAuthRequired, resp.Error)
	assert.Equal(t, AuthRedirect, resp.Redirect)
	assert.Equal(t, "corr-1", resp.CorrelationID)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tt.value)
			id, err := pathID(req, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
