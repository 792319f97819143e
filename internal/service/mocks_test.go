package service

import (
	"context"
	"time"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/model"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of CatalogAPI, AccountAPI and
// OrdersAPI.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Products(ctx context.Context, includeAll bool) ([]model.Product, error) {
	args := m.Called(ctx, includeAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockBackend) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockBackend) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockBackend) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) ToggleAvailability(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockBackend) GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (model.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockBackend) Slots(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBackend) PlaceOrder(ctx context.Context, payload model.CheckoutPayload) (model.Order, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockBackend) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockBackend) KitchenOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockBackend) UpdateStatus(ctx context.Context, id int64, update model.StatusUpdate) (model.Order, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Order), args.Error(1)
}

// fixture wires the stateful collaborators on one memory store.
type fixture struct {
	store   *storage.MemoryStore
	cart    *cart.Engine
	session *session.Session
}

func newFixture() *fixture {
	store := storage.NewMemoryStore()
	f := &fixture{
		store:   store,
		cart:    cart.New(store, zerolog.Nop()),
		session: session.New(store, session.NewStaffTokens("test-secret", time.Hour), zerolog.Nop()),
	}
	f.cart.Load(context.Background())
	f.session.Load(context.Background())
	return f
}

func testProduct(id int64, name, price string, category model.Category) model.Product {
	return model.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Available: true,
		Category:  category,
	}
}

var (
	pizze  = model.Category{ID: 1, Name: "Pizze"}
	bibite = model.Category{ID: 2, Name: "Bibite"}
)
