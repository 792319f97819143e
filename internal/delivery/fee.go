// Package delivery resolves the flat delivery fee for a city.
package delivery

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Zone is one row of the fee table.
type Zone struct {
	City string
	Fee  decimal.Decimal
}

// Table maps cities to flat fees. Lookups are case-insensitive and never
// fail: unknown cities pay the fallback fee.
type Table struct {
	zones    map[string]Zone
	fallback decimal.Decimal
}

// NewTable builds a table from zones and a fallback fee. Later duplicates
// replace earlier ones.
func NewTable(zones []Zone, fallback decimal.Decimal) *Table {
	t := &Table{
		zones:    make(map[string]Zone, len(zones)),
		fallback: fallback,
	}
	for _, z := range zones {
		t.zones[normalise(z.City)] = Zone{City: strings.TrimSpace(z.City), Fee: z.Fee}
	}
	return t
}

// DefaultTable is the table used when no zone file is configured.
func DefaultTable() *Table {
	return NewTable([]Zone{
		{City: "Vinovo", Fee: decimal.RequireFromString("2.00")},
		{City: "Candiolo", Fee: decimal.RequireFromString("3.00")},
	}, decimal.RequireFromString("4.00"))
}

func normalise(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Fee returns the fee for city, or the fallback fee.
func (t *Table) Fee(city string) decimal.Decimal {
	if z, ok := t.zones[normalise(city)]; ok {
		return z.Fee
	}
	return t.fallback
}

// Fallback returns the fee charged for unknown cities.
func (t *Table) Fallback() decimal.Decimal {
	return t.fallback
}

// Known reports whether city has its own row.
func (t *Table) Known(city string) bool {
	_, ok := t.zones[normalise(city)]
	return ok
}

// GrandTotal adds the delivery fee for city to the cart total.
func (t *Table) GrandTotal(cartTotal decimal.Decimal, city string) decimal.Decimal {
	return cartTotal.Add(t.Fee(city))
}

// Cities lists the configured cities in alphabetical order.
func (t *Table) Cities() []Zone {
	out := make([]Zone, 0, len(t.zones))
	for _, z := range t.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out
}
