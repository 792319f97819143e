package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pizza-storefront/internal/model"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	api    CatalogAPI
	logger zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(api CatalogAPI, logger zerolog.Logger) CatalogService {
	return &catalogService{
		api:    api,
		logger: logger.With().Str("service", "catalog").Logger(),
	}
}

// Menu returns available products grouped by category.
func (s *catalogService) Menu(ctx context.Context, category string) (*Menu, error) {
	products, err := s.api.Products(ctx, false)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	category = strings.TrimSpace(category)
	menu := &Menu{Sections: []MenuSection{}, Specials: []model.Product{}}
	index := make(map[int64]int)

	for _, p := range products {
		if !p.Available {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category.Name, category) {
			continue
		}
		if p.IsMonthlySpecial {
			menu.Specials = append(menu.Specials, p)
		}
		i, ok := index[p.Category.ID]
		if !ok {
			i = len(menu.Sections)
			index[p.Category.ID] = i
			menu.Sections = append(menu.Sections, MenuSection{Category: p.Category})
		}
		menu.Sections[i].Products = append(menu.Sections[i].Products, p)
	}

	sort.SliceStable(menu.Sections, func(i, j int) bool {
		return menu.Sections[i].Category.ID < menu.Sections[j].Category.ID
	})

	s.logger.Debug().
		Int("products", len(products)).
		Int("sections", len(menu.Sections)).
		Str("category", category).
		Msg("built menu")

	return menu, nil
}

// Categories lists the menu categories.
func (s *catalogService) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Product looks up a product in the full catalogue.
func (s *catalogService) Product(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, model.ErrProductNotFound
	}

	products, err := s.AllProducts(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	s.logger.Debug().Int64("product_id", id).Msg("product not found")
	return model.Product{}, model.ErrProductNotFound
}

// AllProducts lists every product, unavailable ones included.
func (s *catalogService) AllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.api.Products(ctx, true)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// CreateProduct validates and creates a product.
func (s *catalogService) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if err := in.Validate(); err != nil {
		return model.Product{}, err
	}

	product, err := s.api.CreateProduct(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// DeleteProduct removes a product.
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return model.ErrProductNotFound
	}
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// ToggleAvailability flips a product's availability.
func (s *catalogService) ToggleAvailability(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, model.ErrProductNotFound
	}
	product, err := s.api.ToggleAvailability(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to toggle availability")
		return model.Product{}, fmt.Errorf("failed to toggle availability: %w", err)
	}

	s.logger.Info().
		Int64("product_id", id).
		Bool("available", product.Available).
		Msg("product availability changed")
	return product, nil
}
