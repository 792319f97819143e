// Package storage provides the durable client-side key/value state used by
// the storefront terminal: cart contents, the signed-in user and the staff
// session.
package storage

import (
	"context"
	"errors"
	"strconv"
)

// ErrNotFound is returned when a key has never been written or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// Store persists raw JSON values by key. Implementations are safe for
// concurrent use; the last write wins.
type Store interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Watcher is implemented by stores that can announce writes made by other
// terminals sharing the same backing store.
type Watcher interface {
	// Watch streams the keys that changed until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

// Well-known keys.
const (
	KeyCart  = "cart"
	KeyUser  = "user"
	KeyStaff = "staff"
)

// SummaryKey is the key of the structured summary saved for a placed order.
func SummaryKey(orderID int64) string {
	return "order-summary-" + strconv.FormatInt(orderID, 10)
}
