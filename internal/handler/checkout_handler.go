package handler

import (
	"net/http"

	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/service"

	"github.com/rs/zerolog"
)

type checkoutResponse struct {
	*service.CheckoutResult
	ShareURL string `json:"shareUrl,omitempty"`
}

// CheckoutHandler handles delivery quotes and order submission.
type CheckoutHandler struct {
	service    service.CheckoutService
	sharePhone string
	logger     zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler. When sharePhone is set
// a placed order also carries a WhatsApp link addressed to that number.
func NewCheckoutHandler(service service.CheckoutService, sharePhone string, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:    service,
		sharePhone: sharePhone,
		logger:     logger.With().Str("handler", "checkout").Logger(),
	}
}

// Cities handles GET /api/delivery/cities requests.
func (h *CheckoutHandler) Cities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Cities())
}

// Quote handles GET /api/delivery/quote?city= requests.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Quote(r.URL.Query().Get("city")))
}

// Slots handles GET /api/checkout/slots requests.
func (h *CheckoutHandler) Slots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.Slots(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// Prefill handles GET /api/checkout/prefill requests.
func (h *CheckoutHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Prefill())
}

// Checkout handles POST /api/checkout requests.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if err := decodeJSON(r, &form, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	result, err := h.service.Checkout(r.Context(), form)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	resp := checkoutResponse{CheckoutResult: result}
	if h.sharePhone != "" {
		resp.ShareURL = orderdetail.ShareLink(h.sharePhone, result.Summary)
	}

	h.logger.Info().Int64("order_id", result.Order.ID).Msg("order placed")
	writeJSON(w, http.StatusCreated, resp)
}
