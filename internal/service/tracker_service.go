package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/model"
	"pizza-storefront/internal/order"
	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
)

// trackerService implements TrackerService.
type trackerService struct {
	api       OrdersAPI
	catalog   CatalogAPI
	session   *session.Session
	cart      *cart.Engine
	summaries storage.Store
	interval  time.Duration

	mu     sync.RWMutex
	orders []model.Order
	userID int64

	logger zerolog.Logger
}

// NewTrackerService creates a new tracker polling every interval.
func NewTrackerService(
	api OrdersAPI,
	catalog CatalogAPI,
	sess *session.Session,
	engine *cart.Engine,
	summaries storage.Store,
	interval time.Duration,
	logger zerolog.Logger,
) TrackerService {
	return &trackerService{
		api:       api,
		catalog:   catalog,
		session:   sess,
		cart:      engine,
		summaries: summaries,
		interval:  interval,
		logger:    logger.With().Str("service", "tracker").Logger(),
	}
}

// Run polls until ctx is done. Failed polls keep the previous snapshot.
func (s *trackerService) Run(ctx context.Context) {
	runPoller(ctx, s.interval, s.Refresh, s.logger)
}

// Refresh replaces the snapshot with the customer's current orders.
func (s *trackerService) Refresh(ctx context.Context) error {
	user, ok := s.session.User()
	if !ok {
		s.mu.Lock()
		s.orders, s.userID = nil, 0
		s.mu.Unlock()
		return nil
	}

	orders, err := s.api.UserOrders(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get orders: %w", err)
	}

	s.mu.Lock()
	s.orders, s.userID = orders, user.ID
	s.mu.Unlock()

	s.logger.Debug().Int64("user_id", user.ID).Int("orders", len(orders)).Msg("orders refreshed")
	return nil
}

func (s *trackerService) snapshot() []model.Order {
	user, ok := s.session.User()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !ok || user.ID != s.userID {
		return nil
	}
	return append([]model.Order(nil), s.orders...)
}

func track(orders []model.Order) []TrackedOrder {
	out := make([]TrackedOrder, len(orders))
	for i, o := range orders {
		st := order.StatusOf(o.Status)
		pct, ok := order.Progress(st)
		out[i] = TrackedOrder{Order: o, State: st.String(), Progress: pct, HasProgress: ok}
	}
	return out
}

// Today returns active orders and orders placed today.
func (s *trackerService) Today(now time.Time) []TrackedOrder {
	return track(order.Today(s.snapshot(), now))
}

// History returns terminal orders, newest first.
func (s *trackerService) History() []TrackedOrder {
	return track(order.History(s.snapshot()))
}

func (s *trackerService) find(ctx context.Context, orderID int64) (model.Order, error) {
	if _, ok := s.session.User(); !ok {
		return model.Order{}, model.ErrAuthRequired
	}
	for _, o := range s.snapshot() {
		if o.ID == orderID {
			return o, nil
		}
	}

	if err := s.Refresh(ctx); err != nil {
		return model.Order{}, err
	}
	for _, o := range s.snapshot() {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, model.ErrOrderNotFound
}

// summary prefers the summary saved at checkout and falls back to parsing
// the order text.
func (s *trackerService) summary(ctx context.Context, o model.Order) orderdetail.Summary {
	raw, err := s.summaries.Get(ctx, storage.SummaryKey(o.ID))
	if err == nil {
		var saved orderdetail.Summary
		if json.Unmarshal(raw, &saved) == nil && len(saved.Lines) > 0 {
			return saved
		}
	}
	return orderdetail.Parse(o.OrderDetails)
}

// Receipt returns the printable rows of an order.
func (s *trackerService) Receipt(ctx context.Context, orderID int64) ([]orderdetail.ReceiptRow, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return orderdetail.Receipt(o.OrderDetails), nil
}

// Reorder adds the still-available products of a past order to the cart.
func (s *trackerService) Reorder(ctx context.Context, orderID int64) (*ReorderResult, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.Products(ctx, false)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to get catalogue for reorder")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	plan := orderdetail.Reorder(s.summary(ctx, o), products)
	result := &ReorderResult{Skipped: plan.Skipped}

	for _, m := range plan.Matches {
		for i := 0; i < m.Quantity; i++ {
			if _, err := s.cart.Add(ctx, m.Product, nil); err != nil {
				s.logger.Warn().Err(err).Int64("product_id", m.Product.ID).Msg("reorder line not added")
				break
			}
			result.Added++
		}
	}
	if result.Added > 0 {
		s.cart.SetOpen(true)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Int("added", result.Added).
		Int("skipped", len(result.Skipped)).
		Msg("reorder applied")

	return result, nil
}

// runPoller calls refresh now and then every interval until ctx is done.
// Errors are logged and the next tick tries again.
func runPoller(ctx context.Context, interval time.Duration, refresh func(context.Context) error, logger zerolog.Logger) {
	poll := func() {
		if err := refresh(ctx); err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("poll failed, waiting for next tick")
		}
	}

	poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}
