package service

import (
	"context"
	"time"

	"pizza-storefront/internal/delivery"
	"pizza-storefront/internal/model"
	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/session"

	"github.com/shopspring/decimal"
)

// CatalogAPI is the catalogue part of the backend.
type CatalogAPI interface {
	Products(ctx context.Context, includeAll bool) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (model.Product, error)
}

// AccountAPI is the identity part of the backend.
type AccountAPI interface {
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error)
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (model.User, error)
}

// OrdersAPI is the order part of the backend.
type OrdersAPI interface {
	Slots(ctx context.Context) ([]string, error)
	PlaceOrder(ctx context.Context, payload model.CheckoutPayload) (model.Order, error)
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	KitchenOrders(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error)
}

// Menu is the customer menu.
type Menu struct {
	Sections []MenuSection  `json:"sections"`
	Specials []model.Product `json:"specials"`
}

// MenuSection is one category of the menu.
type MenuSection struct {
	Category model.Category  `json:"category"`
	Products []model.Product `json:"products"`
}

// CatalogService defines the menu and the staff catalogue operations.
type CatalogService interface {
	// Menu returns available products grouped by category. A non-empty
	// category keeps only that category (matched by name, ignoring case).
	Menu(ctx context.Context, category string) (*Menu, error)

	// Categories lists the menu categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// Product looks up a product by id in the live catalogue, unavailable
	// products included.
	Product(ctx context.Context, id int64) (model.Product, error)

	// AllProducts lists every product for the staff editor.
	AllProducts(ctx context.Context) ([]model.Product, error)

	CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ToggleAvailability(ctx context.Context, id int64) (model.Product, error)
}

// StaffSession is returned by a successful staff login.
type StaffSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AccountService defines customer identity and staff login.
type AccountService interface {
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error)

	// Profile returns the signed-in customer or ErrAuthRequired.
	Profile(ctx context.Context) (model.User, error)

	// UpdateProfile saves the delivery details. The session is updated
	// only when the backend accepts the change.
	UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.User, error)

	// Logout forgets the customer and empties the cart.
	Logout(ctx context.Context) error

	StaffLogin(ctx context.Context, password string) (StaffSession, error)
	StaffLogout(ctx context.Context) error

	// State reports who is signed in on this terminal.
	State() session.State
}

// CheckoutForm is the delivery form.
type CheckoutForm struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Slot    string `json:"slot"`
}

// Quote is the price breakdown for a city.
type Quote struct {
	City        string          `json:"city"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
	KnownCity   bool            `json:"knownCity"`
}

// DeliveryZones lists the cities with their own fee and the fee charged
// everywhere else.
type DeliveryZones struct {
	Cities      []delivery.Zone `json:"cities"`
	FallbackFee decimal.Decimal `json:"fallbackFee"`
}

// CheckoutResult is a placed order with its structured summary.
type CheckoutResult struct {
	Order   model.Order         `json:"order"`
	Summary orderdetail.Summary `json:"summary"`
}

// CheckoutService defines the checkout flow.
type CheckoutService interface {
	// Slots lists today's delivery slots.
	Slots(ctx context.Context) ([]string, error)

	// Cities lists the configured delivery zones.
	Cities() DeliveryZones

	// Quote prices the current cart for city.
	Quote(city string) Quote

	// Prefill returns a form filled from the customer profile.
	Prefill() CheckoutForm

	// Checkout submits the cart. At most one submission runs at a time;
	// the cart is emptied only when the backend accepts the order.
	Checkout(ctx context.Context, form CheckoutForm) (*CheckoutResult, error)
}

// TrackedOrder is an order with its lifecycle position.
type TrackedOrder struct {
	model.Order
	State       string `json:"state"`
	Progress    int    `json:"progress"`
	HasProgress bool   `json:"hasProgress"`
}

// ReorderResult reports what a reorder added to the cart.
type ReorderResult struct {
	Added   int      `json:"added"`
	Skipped []string `json:"skipped,omitempty"`
}

// TrackerService defines the customer order tracker.
type TrackerService interface {
	// Run polls the customer's orders until ctx is done.
	Run(ctx context.Context)

	// Refresh fetches the customer's orders now, replacing the snapshot.
	Refresh(ctx context.Context) error

	// Today returns active orders and orders placed on the day of now.
	Today(now time.Time) []TrackedOrder

	// History returns terminal orders, newest first.
	History() []TrackedOrder

	// Receipt returns the printable rows of an order.
	Receipt(ctx context.Context, orderID int64) ([]orderdetail.ReceiptRow, error)

	// Reorder adds the still-available products of a past order to the
	// cart.
	Reorder(ctx context.Context, orderID int64) (*ReorderResult, error)
}

// KitchenOrder is an active order with the actions the board offers.
type KitchenOrder struct {
	model.Order
	State       string   `json:"state"`
	Actions     []string `json:"actions"`
	RejectArmed bool     `json:"rejectArmed"`
}

// KitchenBoard is the staff view.
type KitchenBoard struct {
	Orders     []KitchenOrder `json:"orders"`
	Signals    int            `json:"signals"`
	LastSignal *time.Time     `json:"lastSignal,omitempty"`
}

// KitchenService defines the staff order board.
type KitchenService interface {
	// Refresh fetches the kitchen listing now.
	Refresh(ctx context.Context) error

	// Board returns the current board.
	Board() KitchenBoard

	// Accept moves a submitted order to preparing, optionally rewriting
	// its delivery slot.
	Accept(ctx context.Context, orderID int64, slot string) (model.Order, error)

	// ArmReject marks an order for rejection; ConfirmReject performs it.
	ArmReject(orderID int64) error
	ConfirmReject(ctx context.Context, orderID int64) (model.Order, error)
	CancelReject()

	Dispatch(ctx context.Context, orderID int64) (model.Order, error)
	Deliver(ctx context.Context, orderID int64) (model.Order, error)
}
