package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the backend's zone-less, seconds-precision format.
const TimestampLayout = "2006-01-02T15:04:05"

// Timestamp is a backend local date-time. It is parsed in the terminal's
// local zone and always marshalled without fractional seconds or zone.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

// MarshalJSON writes the backend layout.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(TimestampLayout))
}

// UnmarshalJSON accepts the backend layout with optional fractional seconds
// and RFC 3339 values.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		if string(data) == "null" {
			*t = Timestamp{}
			return nil
		}
		return fmt.Errorf("timestamp: %w", err)
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}
	if parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", raw, time.Local); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("timestamp %q: unsupported format", raw)
	}
	t.Time = parsed.Local()
	return nil
}

// UserRef is the user reference embedded in an order.
type UserRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Order is a submitted order as returned by the backend.
type Order struct {
	ID           int64           `json:"id"`
	OrderDate    Timestamp       `json:"orderDate"`
	DeliveryTime string          `json:"deliveryTime"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderDetails string          `json:"orderDetails"`
	Status       string          `json:"status"`
	User         *UserRef        `json:"user,omitempty"`
}

// CheckoutPayload is the body of POST /api/orders.
type CheckoutPayload struct {
	User         UserRef         `json:"user"`
	OrderDate    Timestamp       `json:"orderDate"`
	DeliveryTime string          `json:"deliveryTime"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderDetails string          `json:"orderDetails"`
	Status       string          `json:"status"`
}

// MarshalJSON writes the total as a JSON number with two decimals.
func (p CheckoutPayload) MarshalJSON() ([]byte, error) {
	type payload CheckoutPayload
	return json.Marshal(struct {
		payload
		TotalAmount json.Number `json:"totalAmount"`
	}{payload(p), json.Number(p.TotalAmount.StringFixed(2))})
}

// Validate checks the payload before it leaves the terminal.
func (p CheckoutPayload) Validate() error {
	if p.User.ID <= 0 {
		return ErrAuthRequired
	}
	if strings.TrimSpace(p.DeliveryTime) == "" {
		return ValidationError("deliveryTime", "select a delivery slot")
	}
	if strings.TrimSpace(p.OrderDetails) == "" {
		return ValidationError("orderDetails", "is required")
	}
	if !p.TotalAmount.IsPositive() {
		return NewDomainError(ErrCodeInvalidValue, "total must be greater than zero")
	}
	return nil
}

// StatusUpdate is the body of PATCH /api/orders/{id}/status.
type StatusUpdate struct {
	Status       string `json:"status"`
	DeliveryTime string `json:"deliveryTime,omitempty"`
}
