package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CartItem is a product snapshot with a quantity and its selected extras.
type CartItem struct {
	Product
	Quantity       int     `json:"quantity"`
	SelectedExtras []Extra `json:"selectedExtras"`
}

// Key identifies a purchase line: the product id plus the ordered extras.
// Two lines with the same product but different extras stay separate.
func (c CartItem) Key() string {
	return LineKey(c.ID, c.SelectedExtras)
}

// MarshalJSON adds the line key, which the cart routes address lines by.
func (c CartItem) MarshalJSON() ([]byte, error) {
	type line CartItem
	return json.Marshal(struct {
		line
		Key string `json:"key"`
	}{line(c), c.Key()})
}

// keyEscaper keeps the separator and path slashes out of extra names.
var keyEscaper = strings.NewReplacer("%", "%25", "+", "%2B", "/", "%2F")

// LineKey builds the cart key for a product and extras selection.
func LineKey(productID int64, extras []Extra) string {
	key := strconv.FormatInt(productID, 10)
	if len(extras) == 0 {
		return key
	}
	names := make([]string, len(extras))
	for i, e := range extras {
		names[i] = keyEscaper.Replace(strings.ToLower(strings.TrimSpace(e.Name)))
	}
	return key + "+" + strings.Join(names, "+")
}

// UnitPrice is the base price plus every extra.
func (c CartItem) UnitPrice() decimal.Decimal {
	unit := c.Price
	for _, e := range c.SelectedExtras {
		unit = unit.Add(e.Price)
	}
	return unit
}

// LineTotal is the unit price times the quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// ExtraNames lists the extras in selection order.
func (c CartItem) ExtraNames() []string {
	names := make([]string, len(c.SelectedExtras))
	for i, e := range c.SelectedExtras {
		names[i] = e.Name
	}
	return names
}
