package handler

import (
	"net/http"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles menu and staff catalogue requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Menu handles GET /api/menu requests.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.Menu(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, menu)
}

// Categories handles GET /api/categories requests.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// AdminList handles GET /api/admin/products requests.
func (h *CatalogHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.AllProducts(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// AdminCreate handles POST /api/admin/products requests.
func (h *CatalogHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var in model.ProductInput
	if err := decodeJSON(r, &in, false); err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// AdminDelete handles DELETE /api/admin/products/{id} requests.
func (h *CatalogHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminToggle handles PATCH /api/admin/products/{id}/availability requests.
func (h *CatalogHandler) AdminToggle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	product, err := h.service.ToggleAvailability(r.Context(), id)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
