package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/order"

	"github.com/rs/zerolog"
)

// AttentionFunc is called when the number of active orders grows.
type AttentionFunc func(activeCount int)

// kitchenService implements KitchenService.
type kitchenService struct {
	api    OrdersAPI
	notify AttentionFunc

	detector order.AttentionDetector
	guard    order.RejectGuard

	mu         sync.RWMutex
	orders     []model.Order
	lastSignal time.Time
	// fetchSeq numbers each listing request; appliedSeq is the newest one
	// on the board. Older listings that finish late are dropped.
	fetchSeq   uint64
	appliedSeq uint64

	now    func() time.Time
	logger zerolog.Logger
}

// NewKitchenService creates a new kitchen board. notify may be nil.
func NewKitchenService(api OrdersAPI, notify AttentionFunc, logger zerolog.Logger) KitchenService {
	return &kitchenService{
		api:    api,
		notify: notify,
		now:    time.Now,
		logger: logger.With().Str("service", "kitchen").Logger(),
	}
}

// Refresh replaces the board with the current kitchen listing and alerts
// when the active count grew since the previous poll. A listing requested
// before one already applied is discarded.
func (s *kitchenService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	orders, err := s.api.KitchenOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to get kitchen orders: %w", err)
	}
	active := order.Active(orders)

	s.mu.Lock()
	if seq < s.appliedSeq {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Msg("dropping stale kitchen listing")
		return nil
	}
	s.appliedSeq = seq
	signal := s.detector.Observe(len(active))
	s.orders = active
	if signal {
		s.lastSignal = s.now()
	}
	s.mu.Unlock()

	if signal {
		s.logger.Info().Int("active", len(active)).Msg("new orders on the board")
		if s.notify != nil {
			s.notify(len(active))
		}
	}
	return nil
}

// Board returns the current board.
func (s *kitchenService) Board() KitchenBoard {
	armed := s.guard.Armed()

	s.mu.RLock()
	defer s.mu.RUnlock()

	board := KitchenBoard{
		Orders:  make([]KitchenOrder, len(s.orders)),
		Signals: s.detector.Signals(),
	}
	for i, o := range s.orders {
		st := order.StatusOf(o.Status)
		actions := order.Actions(st)
		names := make([]string, len(actions))
		for j, a := range actions {
			names[j] = string(a)
		}
		board.Orders[i] = KitchenOrder{
			Order:       o,
			State:       st.String(),
			Actions:     names,
			RejectArmed: armed != 0 && armed == o.ID,
		}
	}
	if !s.lastSignal.IsZero() {
		last := s.lastSignal
		board.LastSignal = &last
	}
	return board
}

func (s *kitchenService) current(orderID int64) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, model.ErrOrderNotFound
}

// transition validates action against the order's current status, sends
// the PATCH and refreshes the board.
func (s *kitchenService) transition(ctx context.Context, orderID int64, action order.Action, slot string) (model.Order, error) {
	o, err := s.current(orderID)
	if err != nil {
		return model.Order{}, err
	}
	from := order.StatusOf(o.Status)
	to, err := order.Next(from, action)
	if err != nil {
		return model.Order{}, err
	}

	updated, err := s.api.UpdateStatus(ctx, orderID, model.StatusUpdate{
		Status:       to.Wire(),
		DeliveryTime: strings.TrimSpace(slot),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", orderID).
			Str("action", string(action)).
			Msg("failed to update order status")
		return model.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Int64("order_id", orderID).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("order status changed")

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("refresh after status change failed")
	}
	return updated, nil
}

// Accept moves a submitted order to preparing.
func (s *kitchenService) Accept(ctx context.Context, orderID int64, slot string) (model.Order, error) {
	s.guard.Disarm()
	return s.transition(ctx, orderID, order.ActionAccept, slot)
}

// ArmReject marks a submitted order for rejection.
func (s *kitchenService) ArmReject(orderID int64) error {
	o, err := s.current(orderID)
	if err != nil {
		return err
	}
	if _, err := order.Next(order.StatusOf(o.Status), order.ActionReject); err != nil {
		return err
	}
	s.guard.Arm(orderID)
	return nil
}

// ConfirmReject rejects the armed order.
func (s *kitchenService) ConfirmReject(ctx context.Context, orderID int64) (model.Order, error) {
	if !s.guard.Confirm(orderID) {
		return model.Order{}, model.ErrRejectNotArmed
	}
	return s.transition(ctx, orderID, order.ActionReject, "")
}

// CancelReject disarms a pending rejection.
func (s *kitchenService) CancelReject() {
	s.guard.Disarm()
}

// Dispatch sends a prepared order out for delivery.
func (s *kitchenService) Dispatch(ctx context.Context, orderID int64) (model.Order, error) {
	s.guard.Disarm()
	return s.transition(ctx, orderID, order.ActionDispatch, "")
}

// Deliver completes an order out for delivery.
func (s *kitchenService) Deliver(ctx context.Context, orderID int64) (model.Order, error) {
	s.guard.Disarm()
	return s.transition(ctx, orderID, order.ActionDeliver, "")
}
