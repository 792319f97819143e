// Package orderdetail converts between a structured order summary and the
// free-text orderDetails field carried by backend orders.
//
// The text is the only order content the backend stores, so Parse is best
// effort: unrecognised lines are ignored and a failed parse yields an empty
// summary rather than an error.
package orderdetail

import (
	"strings"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/model"
)

// Line is one purchase line.
type Line struct {
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Extras   []string        `json:"extras,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// Summary is the structured content of an order.
type Summary struct {
	Customer      string          `json:"customer"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Phone         string          `json:"phone"`
	RequestedTime string          `json:"requestedTime"`
	Lines         []Line          `json:"lines"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	Total         decimal.Decimal `json:"total"`
}

// Contact is the delivery form part of a summary.
type Contact struct {
	Customer      string
	Address       string
	City          string
	Phone         string
	RequestedTime string
}

// FromCart builds the summary for a checkout. total is the grand total,
// cart total plus fee.
func FromCart(contact Contact, items []model.CartItem, fee, total decimal.Decimal) Summary {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{
			Quantity: item.Quantity,
			Name:     strings.TrimSpace(item.Name),
			Extras:   item.ExtraNames(),
			Amount:   item.LineTotal(),
		})
	}

	return Summary{
		Customer:      strings.TrimSpace(contact.Customer),
		Address:       strings.TrimSpace(contact.Address),
		City:          strings.TrimSpace(contact.City),
		Phone:         strings.TrimSpace(contact.Phone),
		RequestedTime: strings.TrimSpace(contact.RequestedTime),
		Lines:         lines,
		DeliveryFee:   fee,
		Total:         total,
	}
}
