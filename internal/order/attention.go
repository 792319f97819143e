package order

import "sync"

// AttentionDetector decides when the kitchen should be alerted. It signals
// once each time the active count grows between two polls. The first
// observation only records a baseline.
type AttentionDetector struct {
	mu      sync.Mutex
	last    int
	primed  bool
	signals int
}

// Observe records a poll result and reports whether to signal.
func (d *AttentionDetector) Observe(activeCount int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	signal := d.primed && activeCount > d.last
	d.last = activeCount
	d.primed = true
	if signal {
		d.signals++
	}
	return signal
}

// Signals returns how many alerts have fired.
func (d *AttentionDetector) Signals() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.signals
}

// RejectGuard is the kitchen board's two-step confirmation for rejections.
// It lives in the UI layer; the lifecycle itself has no pending state.
type RejectGuard struct {
	mu    sync.Mutex
	armed int64
}

// Arm marks an order for rejection, replacing any previously armed order.
func (g *RejectGuard) Arm(orderID int64) {
	g.mu.Lock()
	g.armed = orderID
	g.mu.Unlock()
}

// Confirm consumes the armed state. It returns false when orderID was not
// the armed order; the guard is disarmed either way.
func (g *RejectGuard) Confirm(orderID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	ok := g.armed != 0 && g.armed == orderID
	g.armed = 0
	return ok
}

// Disarm clears the armed state.
func (g *RejectGuard) Disarm() {
	g.mu.Lock()
	g.armed = 0
	g.mu.Unlock()
}

// Armed returns the armed order id, or zero.
func (g *RejectGuard) Armed() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed
}
