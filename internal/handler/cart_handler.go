package handler

import (
	"context"
	"net/http"
	"strings"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/model"

	"github.com/rs/zerolog"
)

// CartEngine is the part of the cart engine the HTTP layer drives.
type CartEngine interface {
	Snapshot() cart.Snapshot
	Add(ctx context.Context, product model.Product, extras []model.Extra) (model.CartItem, error)
	Remove(ctx context.Context, key string) error
	SetQuantity(ctx context.Context, key string, quantity int) error
	Clear(ctx context.Context) error
	SetOpen(open bool)
}

// ProductFinder resolves a product id against the live catalogue.
type ProductFinder interface {
	Product(ctx context.Context, id int64) (model.Product, error)
}

type addItemRequest struct {
	ProductID int64         `json:"productId"`
	Extras    []model.Extra `json:"extras"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type openRequest struct {
	Open bool `json:"open"`
}

// CartHandler handles cart HTTP requests.
type CartHandler struct {
	cart     CartEngine
	products ProductFinder
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(engine CartEngine, products ProductFinder, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cart:     engine,
		products: products,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if req.ProductID <= 0 {
		respondError(w, r, model.ValidationError("productId", "is required"), h.logger)
		return
	}
	for _, e := range req.Extras {
		if strings.TrimSpace(e.Name) == "" || e.Price.IsNegative() {
			respondError(w, r, model.NewDomainError(model.ErrCodeInvalidValue, "invalid extra"), h.logger)
			return
		}
	}

	product, err := h.products.Product(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	if _, err := h.cart.Add(r.Context(), product, req.Extras); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, h.cart.Snapshot())
}

// UpdateItem handles PUT /api/cart/items/{key} requests. A quantity below
// one removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if req.Quantity == nil {
		respondError(w, r, model.ValidationError("quantity", "is required"), h.logger)
		return
	}

	if err := h.cart.SetQuantity(r.Context(), r.PathValue("key"), *req.Quantity); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// RemoveItem handles DELETE /api/cart/items/{key} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Remove(r.Context(), r.PathValue("key")); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}

// SetOpen handles PUT /api/cart/open requests.
func (h *CartHandler) SetOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	h.cart.SetOpen(req.Open)
	writeJSON(w, http.StatusOK, h.cart.Snapshot())
}
