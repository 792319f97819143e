// Package cart is the sole authority over what the customer intends to buy
// before an order is submitted.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Snapshot is an immutable view of the cart with its derived totals.
type Snapshot struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
	Count int              `json:"count"`
	Open  bool             `json:"open"`
}

// Listener receives a snapshot after every change.
type Listener func(Snapshot)

// Engine holds the cart lines and persists them on every mutation.
type Engine struct {
	mu        sync.Mutex
	items     []model.CartItem
	open      bool
	rev       uint64 // bumped by every local change to items
	store     storage.Store
	listeners map[int]Listener
	nextID    int
	logger    zerolog.Logger
}

// New creates an empty engine backed by store. Call Load to restore the
// persisted cart.
func New(store storage.Store, logger zerolog.Logger) *Engine {
	return &Engine{
		store:     store,
		listeners: make(map[int]Listener),
		logger:    logger.With().Str("component", "cart").Logger(),
	}
}

// Load restores the persisted cart. Missing or unreadable data leaves the
// cart empty; it never fails startup. A read that overlaps a local change
// is discarded: that change persists itself and notifies again.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	rev := e.rev
	e.mu.Unlock()

	items := e.read(ctx)

	e.mu.Lock()
	if e.rev != rev {
		e.mu.Unlock()
		e.logger.Debug().Msg("cart changed while loading, keeping local lines")
		return
	}
	e.items = items
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.logger.Debug().Int("lines", len(items)).Msg("cart loaded")
	e.publish(snap)
}

// Reload re-reads the store after another terminal changed it.
func (e *Engine) Reload(ctx context.Context) {
	e.Load(ctx)
}

func (e *Engine) read(ctx context.Context) []model.CartItem {
	raw, err := e.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.logger.Warn().Err(err).Msg("failed to read stored cart, starting empty")
		}
		return nil
	}

	var stored []model.CartItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		e.logger.Warn().Err(err).Msg("stored cart is corrupt, starting empty")
		return nil
	}
	return sanitise(stored)
}

// sanitise drops impossible lines and merges duplicate keys.
func sanitise(stored []model.CartItem) []model.CartItem {
	items := make([]model.CartItem, 0, len(stored))
	index := make(map[string]int, len(stored))
	for _, it := range stored {
		if it.ID <= 0 || it.Quantity < 1 {
			continue
		}
		if i, ok := index[it.Key()]; ok {
			items[i].Quantity += it.Quantity
			continue
		}
		index[it.Key()] = len(items)
		items = append(items, it)
	}
	return items
}

// Add puts one unit of product with the given extras in the cart. A line
// with the same product and the same extras is incremented; otherwise a
// new line is appended. The first line added to an empty cart opens it.
func (e *Engine) Add(ctx context.Context, product model.Product, extras []model.Extra) (model.CartItem, error) {
	if !product.Available {
		return model.CartItem{}, model.ErrProductUnavailable
	}

	e.mu.Lock()
	key := model.LineKey(product.ID, extras)
	var line model.CartItem
	if i := e.indexLocked(key); i >= 0 {
		e.items[i].Quantity++
		line = e.items[i]
	} else {
		if len(e.items) == 0 {
			e.open = true
		}
		line = model.CartItem{
			Product:        product,
			Quantity:       1,
			SelectedExtras: append([]model.Extra(nil), extras...),
		}
		e.items = append(e.items, line)
	}
	err := e.persistLocked(ctx)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return line, err
}

// Remove deletes a line regardless of its quantity. Unknown keys are a
// no-op.
func (e *Engine) Remove(ctx context.Context, key string) error {
	e.mu.Lock()
	i := e.indexLocked(key)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	err := e.persistLocked(ctx)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return err
}

// SetQuantity replaces a line's quantity. Values below one remove the
// line; unknown keys are a no-op.
func (e *Engine) SetQuantity(ctx context.Context, key string, quantity int) error {
	if quantity < 1 {
		return e.Remove(ctx, key)
	}

	e.mu.Lock()
	i := e.indexLocked(key)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	e.items[i].Quantity = quantity
	err := e.persistLocked(ctx)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return err
}

// Clear empties the cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	e.items = nil
	e.open = false
	err := e.persistLocked(ctx)
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return err
}

// SetOpen toggles the UI open flag.
func (e *Engine) SetOpen(open bool) {
	e.mu.Lock()
	e.open = open
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// Items returns a copy of the current lines.
func (e *Engine) Items() []model.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneItems(e.items)
}

// Total is recomputed from the current lines.
func (e *Engine) Total() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Total(e.items)
}

// Count is recomputed from the current lines.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Count(e.items)
}

// Snapshot returns the lines with their derived totals.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription.
func (e *Engine) Subscribe(fn Listener) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

func (e *Engine) indexLocked(key string) int {
	for i, it := range e.items {
		if it.Key() == key {
			return i
		}
	}
	return -1
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Items: cloneItems(e.items),
		Total: Total(e.items),
		Count: Count(e.items),
		Open:  e.open,
	}
}

func (e *Engine) persistLocked(ctx context.Context) error {
	e.rev++
	items := e.items
	if items == nil {
		items = []model.CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := e.store.Set(ctx, storage.KeyCart, raw); err != nil {
		e.logger.Error().Err(err).Int("lines", len(items)).Msg("failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (e *Engine) publish(snap Snapshot) {
	e.mu.Lock()
	listeners := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		listeners = append(listeners, l)
	}
	e.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func cloneItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	for i, it := range items {
		it.SelectedExtras = append([]model.Extra(nil), it.SelectedExtras...)
		out[i] = it
	}
	return out
}

// Total sums (price + extras) × quantity over items.
func Total(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Count sums the quantities.
func Count(items []model.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
