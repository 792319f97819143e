package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/order"
)

// Slots returns today's bookable delivery slots in backend order.
func (c *Client) Slots(ctx context.Context) ([]string, error) {
	var slots []string
	if err := c.do(ctx, http.MethodGet, "/api/orders/slots", nil, nil, &slots); err != nil {
		return nil, err
	}

	out := slots[:0]
	for _, s := range slots {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// PlaceOrder submits a checkout. It is not idempotent.
func (c *Client) PlaceOrder(ctx context.Context, payload model.CheckoutPayload) (model.Order, error) {
	if err := payload.Validate(); err != nil {
		return model.Order{}, err
	}

	var placed model.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, payload, &placed); err != nil {
		return model.Order{}, err
	}
	if err := validateOrder(placed); err != nil {
		return model.Order{}, fmt.Errorf("invalid order in response: %w", err)
	}
	return placed, nil
}

// UserOrders lists the orders of a customer, newest first.
func (c *Client) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return c.orderList(ctx, "/api/orders/user/"+strconv.FormatInt(userID, 10))
}

// KitchenOrders lists the orders in an active status, oldest first.
func (c *Client) KitchenOrders(ctx context.Context) ([]model.Order, error) {
	return c.orderList(ctx, "/api/orders/kitchen")
}

// UpdateStatus moves an order to a new status and optionally rewrites its
// delivery time.
func (c *Client) UpdateStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error) {
	if _, err := order.ParseStatus(update.Status); err != nil {
		return model.Order{}, err
	}

	var updated model.Order
	path := "/api/orders/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, nil, update, &updated); err != nil {
		return model.Order{}, err
	}
	if err := validateOrder(updated); err != nil {
		return model.Order{}, fmt.Errorf("invalid order in response: %w", err)
	}
	return updated, nil
}

func (c *Client) orderList(ctx context.Context, path string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &orders); err != nil {
		return nil, err
	}

	valid := orders[:0]
	for _, o := range orders {
		if err := validateOrder(o); err != nil {
			c.logger.Warn().Err(err).Int64("order_id", o.ID).Msg("dropping invalid order")
			continue
		}
		valid = append(valid, o)
	}
	return valid, nil
}

func validateOrder(o model.Order) error {
	if o.ID <= 0 {
		return model.ValidationError("id", "must be positive")
	}
	if _, err := order.ParseStatus(o.Status); err != nil {
		return err
	}
	return nil
}
