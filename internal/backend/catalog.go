package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pizza-storefront/internal/model"
)

// Products lists the catalogue. includeAll adds unavailable products.
func (c *Client) Products(ctx context.Context, includeAll bool) ([]model.Product, error) {
	var query url.Values
	if includeAll {
		query = url.Values{"includeAll": {"true"}}
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", query, nil, &products); err != nil {
		return nil, err
	}

	valid := products[:0]
	for _, p := range products {
		if err := p.Validate(); err != nil {
			c.logger.Warn().Err(err).Int64("product_id", p.ID).Msg("dropping invalid product")
			continue
		}
		valid = append(valid, p)
	}
	return valid, nil
}

// Categories lists the menu categories.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct adds a product to the catalogue.
func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	body := struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Price       float64        `json:"price"`
		ImageURL    string         `json:"imageUrl,omitempty"`
		Available   bool           `json:"available"`
		Category    model.Category `json:"category"`
	}{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price.InexactFloat64(),
		ImageURL:    in.ImageURL,
		Available:   in.Available,
		Category:    model.Category{ID: in.CategoryID},
	}

	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, body, &product); err != nil {
		return model.Product{}, err
	}
	if err := product.Validate(); err != nil {
		return model.Product{}, fmt.Errorf("invalid product in response: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// ToggleAvailability flips a product's availability and returns it.
func (c *Client) ToggleAvailability(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	path := "/api/products/" + strconv.FormatInt(id, 10) + "/toggle-availability"
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &product); err != nil {
		return model.Product{}, err
	}
	if err := product.Validate(); err != nil {
		return model.Product{}, fmt.Errorf("invalid product in response: %w", err)
	}
	return product, nil
}
