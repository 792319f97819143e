package orderdetail

import (
	"strings"

	"pizza-storefront/internal/model"
)

// Match is a catalog product recovered from a past order.
type Match struct {
	Product  model.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// ReorderPlan lists what can be added back to the cart and what cannot.
type ReorderPlan struct {
	Matches []Match  `json:"matches"`
	Skipped []string `json:"skipped,omitempty"`
}

// Reorder matches the lines of s against catalog by case-insensitive name.
// Names that are missing or unavailable are reported as skipped.
func Reorder(s Summary, catalog []model.Product) ReorderPlan {
	byName := make(map[string]model.Product, len(catalog))
	for _, p := range catalog {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if existing, ok := byName[key]; ok && existing.Available {
			continue
		}
		byName[key] = p
	}

	var plan ReorderPlan
	for _, l := range s.Lines {
		p, ok := byName[strings.ToLower(strings.TrimSpace(l.Name))]
		if !ok || !p.Available {
			plan.Skipped = append(plan.Skipped, l.Name)
			continue
		}
		plan.Matches = append(plan.Matches, Match{Product: p, Quantity: l.Quantity})
	}
	return plan
}
