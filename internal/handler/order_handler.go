package handler

import (
	"net/http"
	"time"

	"pizza-storefront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles the customer's order tracker.
type OrderHandler struct {
	service service.TrackerService
	now     func() time.Time
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.TrackerService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		now:     time.Now,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Today handles GET /api/orders/today requests.
func (h *OrderHandler) Today(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Today(h.now()))
}

// History handles GET /api/orders/history requests.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.History())
}

// Receipt handles GET /api/orders/{id}/receipt requests.
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	rows, err := h.service.Receipt(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Reorder handles POST /api/orders/{id}/reorder requests.
func (h *OrderHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Reorder(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
