package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products on the menu.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product represents a dish or drink in the catalogue.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Available        bool            `json:"available"`
	Category         Category        `json:"category"`
	IsMonthlySpecial bool            `json:"isMonthlySpecial,omitempty"`
}

// Validate checks a product decoded from the backend.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return ValidationError("id", "must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError("name", "is required")
	}
	if p.Price.IsNegative() {
		return NewDomainError(ErrCodeInvalidValue, fmt.Sprintf("product %d: negative price", p.ID))
	}
	return nil
}

// Extra is an optional add-on attached to a single cart line.
type Extra struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductInput is the staff payload for creating a product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Available   bool            `json:"available"`
	CategoryID  int64           `json:"categoryId"`
}

// Validate checks the staff product form.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ValidationError("name", "is required")
	}
	if !in.Price.IsPositive() {
		return NewDomainError(ErrCodeInvalidValue, "price must be greater than zero")
	}
	if in.CategoryID <= 0 {
		return ValidationError("categoryId", "select a category")
	}
	return nil
}
