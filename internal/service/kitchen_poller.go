package service

import (
	"context"
	"sync"
	"time"

	"pizza-storefront/internal/session"

	"github.com/rs/zerolog"
)

// StaffWatcher publishes session changes.
type StaffWatcher interface {
	Subscribe(fn session.Listener) func()
}

// KitchenPoller refreshes the kitchen board on an interval while a staff
// session is open. An expired session stops it at the next tick.
type KitchenPoller struct {
	kitchen  KitchenService
	interval time.Duration
	isStaff  func() bool
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewKitchenPoller creates a stopped poller. isStaff reports whether the
// staff session is still valid.
func NewKitchenPoller(kitchen KitchenService, interval time.Duration, isStaff func() bool, logger zerolog.Logger) *KitchenPoller {
	return &KitchenPoller{
		kitchen:  kitchen,
		interval: interval,
		isStaff:  isStaff,
		logger:   logger.With().Str("component", "kitchen-poller").Logger(),
	}
}

// Follow starts and stops polling with the staff session until ctx is
// done.
func (p *KitchenPoller) Follow(ctx context.Context, w StaffWatcher) {
	unsubscribe := w.Subscribe(func(st session.State) {
		if st.Staff {
			p.Start(ctx)
			return
		}
		p.Stop()
	})
	defer unsubscribe()

	if p.isStaff() {
		p.Start(ctx)
	}

	<-ctx.Done()
	p.Stop()
}

// Start begins polling. It is a no-op while already running.
func (p *KitchenPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel, p.done = cancel, done

	go func() {
		defer func() {
			p.mu.Lock()
			if p.done == done {
				p.cancel, p.done = nil, nil
			}
			p.mu.Unlock()
			close(done)
		}()

		runPoller(runCtx, p.interval, func(ctx context.Context) error {
			if !p.isStaff() {
				p.logger.Info().Msg("staff session ended, stopping kitchen polling")
				cancel()
				return nil
			}
			return p.kitchen.Refresh(ctx)
		}, p.logger)
	}()

	p.logger.Info().Dur("interval", p.interval).Msg("kitchen polling started")
}

// Stop ends polling and waits for the in-flight refresh to return.
func (p *KitchenPoller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.logger.Info().Msg("kitchen polling stopped")
}

// Running reports whether the poller is active.
func (p *KitchenPoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
