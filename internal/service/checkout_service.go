package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/delivery"
	"pizza-storefront/internal/model"
	"pizza-storefront/internal/order"
	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	api        OrdersAPI
	cart       *cart.Engine
	session    *session.Session
	zones      *delivery.Table
	summaries  storage.Store
	submitting atomic.Bool
	now        func() time.Time
	logger     zerolog.Logger
}

// NewCheckoutService creates a new checkout service. Placed order
// summaries are kept in summaries.
func NewCheckoutService(
	api OrdersAPI,
	engine *cart.Engine,
	sess *session.Session,
	zones *delivery.Table,
	summaries storage.Store,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		api:       api,
		cart:      engine,
		session:   sess,
		zones:     zones,
		summaries: summaries,
		now:       time.Now,
		logger:    logger.With().Str("service", "checkout").Logger(),
	}
}

// Slots lists today's delivery slots.
func (s *checkoutService) Slots(ctx context.Context) ([]string, error) {
	slots, err := s.api.Slots(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get slots")
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	return slots, nil
}

// Cities lists the delivery zones.
func (s *checkoutService) Cities() DeliveryZones {
	return DeliveryZones{Cities: s.zones.Cities(), FallbackFee: s.zones.Fallback()}
}

// Quote prices the current cart for city.
func (s *checkoutService) Quote(city string) Quote {
	subtotal := s.cart.Total()
	return Quote{
		City:        strings.TrimSpace(city),
		Subtotal:    subtotal,
		DeliveryFee: s.zones.Fee(city),
		Total:       s.zones.GrandTotal(subtotal, city),
		KnownCity:   s.zones.Known(city),
	}
}

// Prefill fills the form from the customer profile.
func (s *checkoutService) Prefill() CheckoutForm {
	user, ok := s.session.User()
	if !ok {
		return CheckoutForm{}
	}
	return CheckoutForm{
		Name:    user.FullName(),
		Address: user.Address,
		City:    user.City,
		Phone:   user.Phone,
	}
}

func (f CheckoutForm) validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return model.ValidationError("name", "is required")
	case strings.TrimSpace(f.Address) == "":
		return model.ValidationError("address", "is required")
	case strings.TrimSpace(f.Phone) == "":
		return model.ValidationError("phone", "is required")
	case strings.TrimSpace(f.Slot) == "":
		return model.ValidationError("slot", "select a delivery time")
	}
	return nil
}

// Checkout submits the cart.
func (s *checkoutService) Checkout(ctx context.Context, form CheckoutForm) (*CheckoutResult, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	user, ok := s.session.User()
	if !ok {
		s.logger.Info().Msg("checkout without a customer, redirecting to login")
		return nil, model.ErrAuthRequired
	}

	if !s.submitting.CompareAndSwap(false, true) {
		s.logger.Warn().Int64("user_id", user.ID).Msg("checkout already in progress")
		return nil, model.ErrCheckoutInProgress
	}
	defer s.submitting.Store(false)

	subtotal := cart.Total(items)
	fee := s.zones.Fee(form.City)
	total := subtotal.Add(fee)

	summary := orderdetail.FromCart(orderdetail.Contact{
		Customer:      form.Name,
		Address:       form.Address,
		City:          form.City,
		Phone:         form.Phone,
		RequestedTime: form.Slot,
	}, items, fee, total)

	payload := model.CheckoutPayload{
		User:         model.UserRef{ID: user.ID},
		OrderDate:    model.NewTimestamp(s.now()),
		DeliveryTime: strings.TrimSpace(form.Slot),
		TotalAmount:  total,
		OrderDetails: orderdetail.Render(summary),
		Status:       order.StatusSubmitted.Wire(),
	}

	placed, err := s.api.PlaceOrder(ctx, payload)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", user.ID).
			Str("total", total.StringFixed(2)).
			Msg("failed to place order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", placed.ID).Msg("order placed but cart not cleared")
	}
	s.saveSummary(ctx, placed.ID, summary)

	s.logger.Info().
		Int64("order_id", placed.ID).
		Int64("user_id", user.ID).
		Int("lines", len(items)).
		Str("total", total.StringFixed(2)).
		Str("slot", payload.DeliveryTime).
		Msg("order placed")

	return &CheckoutResult{Order: placed, Summary: summary}, nil
}

func (s *checkoutService) saveSummary(ctx context.Context, orderID int64, summary orderdetail.Summary) {
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.summaries.Set(ctx, storage.SummaryKey(orderID), raw); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", orderID).Msg("failed to keep order summary")
	}
}
