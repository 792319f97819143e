// Package order holds the order lifecycle shared by the kitchen board and
// the customer tracker.
package order

import (
	"fmt"
	"strings"
)

// Status is a canonical order state.
type Status int

const (
	StatusUnknown Status = iota
	StatusSubmitted
	StatusPreparing
	StatusOutForDelivery
	StatusCompleted
	StatusRejected
)

// Backend wire labels.
const (
	WireSubmitted      = "INVIATO"
	WirePreparing      = "IN_PREPARAZIONE"
	WireOutForDelivery = "IN_CONSEGNA"
	WireCompleted      = "COMPLETATO"
	WireDelivered      = "CONSEGNATO"
	WireRejected       = "RIFIUTATO"
)

var statusNames = map[Status]string{
	StatusSubmitted:      "SUBMITTED",
	StatusPreparing:      "PREPARING",
	StatusOutForDelivery: "OUT_FOR_DELIVERY",
	StatusCompleted:      "COMPLETED",
	StatusRejected:       "REJECTED",
}

var wireLabels = map[Status]string{
	StatusSubmitted:      WireSubmitted,
	StatusPreparing:      WirePreparing,
	StatusOutForDelivery: WireOutForDelivery,
	StatusCompleted:      WireCompleted,
	StatusRejected:       WireRejected,
}

// aliases maps every label seen on the wire or in the UI to a status.
// CONSEGNATO and DELIVERED are the same terminal success as COMPLETATO.
var aliases = map[string]Status{
	WireSubmitted:      StatusSubmitted,
	WirePreparing:      StatusPreparing,
	WireOutForDelivery: StatusOutForDelivery,
	WireCompleted:      StatusCompleted,
	WireDelivered:      StatusCompleted,
	WireRejected:       StatusRejected,
	"SUBMITTED":        StatusSubmitted,
	"PREPARING":        StatusPreparing,
	"OUT_FOR_DELIVERY": StatusOutForDelivery,
	"COMPLETED":        StatusCompleted,
	"DELIVERED":        StatusCompleted,
	"REJECTED":         StatusRejected,
}

// ParseStatus resolves a backend or canonical label, ignoring case and
// surrounding whitespace.
func ParseStatus(label string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if s, ok := aliases[normalized]; ok {
		return s, nil
	}
	return StatusUnknown, fmt.Errorf("unknown order status %q", label)
}

// String returns the canonical name.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Wire returns the label the backend expects.
func (s Status) Wire() string {
	return wireLabels[s]
}

// MarshalText renders the canonical name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsActive reports an in-flight order.
func (s Status) IsActive() bool {
	return s == StatusSubmitted || s == StatusPreparing || s == StatusOutForDelivery
}

// IsHistorical reports a terminal order.
func (s Status) IsHistorical() bool {
	return s == StatusCompleted || s == StatusRejected
}

// StatusOf parses a label and falls back to StatusUnknown.
func StatusOf(label string) Status {
	s, _ := ParseStatus(label)
	return s
}
