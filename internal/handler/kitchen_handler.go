package handler

import (
	"net/http"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/order"
	"pizza-storefront/internal/service"

	"github.com/rs/zerolog"
)

// Rejection confirmation steps addressed by
// POST /api/kitchen/orders/{id}/{action}. The lifecycle actions use their
// own names (accept, reject, dispatch, deliver).
const (
	ActionConfirmReject = "confirm-reject"
	ActionCancelReject  = "cancel-reject"
)

type acceptRequest struct {
	Slot string `json:"slot"`
}

// KitchenHandler handles the staff order board.
type KitchenHandler struct {
	service service.KitchenService
	logger  zerolog.Logger
}

// NewKitchenHandler creates a new kitchen handler.
func NewKitchenHandler(service service.KitchenService, logger zerolog.Logger) *KitchenHandler {
	return &KitchenHandler{
		service: service,
		logger:  logger.With().Str("handler", "kitchen").Logger(),
	}
}

// Board handles GET /api/kitchen/orders requests. ?refresh=true polls the
// backend before answering.
func (h *KitchenHandler) Board(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "true" {
		if err := h.service.Refresh(r.Context()); err != nil {
			respondError(w, r, err, h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.service.Board())
}

// Action handles POST /api/kitchen/orders/{id}/{action} requests.
func (h *KitchenHandler) Action(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	ctx := r.Context()
	var updated model.Order

	switch name := r.PathValue("action"); name {
	case ActionConfirmReject:
		updated, err = h.service.ConfirmReject(ctx, id)
	case ActionCancelReject:
		h.service.CancelReject()
		writeJSON(w, http.StatusOK, h.service.Board())
		return
	default:
		action, parseErr := order.ParseAction(name)
		if parseErr != nil {
			writeError(w, r, http.StatusNotFound, model.ErrCodeInvalidValue, parseErr.Error(), h.logger)
			return
		}

		switch action {
		case order.ActionAccept:
			var req acceptRequest
			if err := decodeJSON(r, &req, true); err != nil {
				respondError(w, r, err, h.logger)
				return
			}
			updated, err = h.service.Accept(ctx, id, req.Slot)
		case order.ActionReject:
			// Rejection is two-step: this arms it, confirm-reject performs it.
			if err := h.service.ArmReject(id); err != nil {
				respondError(w, r, err, h.logger)
				return
			}
			writeJSON(w, http.StatusAccepted, h.service.Board())
			return
		case order.ActionDispatch:
			updated, err = h.service.Dispatch(ctx, id)
		case order.ActionDeliver:
			updated, err = h.service.Deliver(ctx, id)
		}
	}

	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	h.logger.Info().Int64("order_id", id).Str("status", updated.Status).Msg("order updated")
	writeJSON(w, http.StatusOK, updated)
}
