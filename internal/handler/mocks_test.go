package handler

import (
	"context"
	"time"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/service"
	"pizza-storefront/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Menu(ctx context.Context, category string) (*service.Menu, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Menu), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCatalogService) Product(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockCatalogService) AllProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) ToggleAvailability(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccountService) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccountService) GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccountService) Profile(ctx context.Context) (model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (model.User, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAccountService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAccountService) StaffLogin(ctx context.Context, password string) (service.StaffSession, error) {
	args := m.Called(ctx, password)
	return args.Get(0).(service.StaffSession), args.Error(1)
}

func (m *MockAccountService) StaffLogout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAccountService) State() session.State {
	return m.Called().Get(0).(session.State)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Slots(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCheckoutService) Cities() service.DeliveryZones {
	return m.Called().Get(0).(service.DeliveryZones)
}

func (m *MockCheckoutService) Quote(city string) service.Quote {
	return m.Called(city).Get(0).(service.Quote)
}

func (m *MockCheckoutService) Prefill() service.CheckoutForm {
	return m.Called().Get(0).(service.CheckoutForm)
}

func (m *MockCheckoutService) Checkout(ctx context.Context, form service.CheckoutForm) (*service.CheckoutResult, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}

// MockTrackerService is a mock implementation of TrackerService.
type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) Run(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockTrackerService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTrackerService) Today(now time.Time) []service.TrackedOrder {
	return m.Called(now).Get(0).([]service.TrackedOrder)
}

func (m *MockTrackerService) History() []service.TrackedOrder {
	return m.Called().Get(0).([]service.TrackedOrder)
}

func (m *MockTrackerService) Receipt(ctx context.Context, orderID int64) ([]orderdetail.ReceiptRow, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderdetail.ReceiptRow), args.Error(1)
}

func (m *MockTrackerService) Reorder(ctx context.Context, orderID int64) (*service.ReorderResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReorderResult), args.Error(1)
}

// MockKitchenService is a mock implementation of KitchenService.
type MockKitchenService struct {
	mock.Mock
}

func (m *MockKitchenService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockKitchenService) Board() service.KitchenBoard {
	return m.Called().Get(0).(service.KitchenBoard)
}

func (m *MockKitchenService) Accept(ctx context.Context, orderID int64, slot string) (model.Order, error) {
	args := m.Called(ctx, orderID, slot)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockKitchenService) ArmReject(orderID int64) error {
	return m.Called(orderID).Error(0)
}

func (m *MockKitchenService) ConfirmReject(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockKitchenService) CancelReject() {
	m.Called()
}

func (m *MockKitchenService) Dispatch(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *MockKitchenService) Deliver(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func margherita() model.Product {
	return model.Product{
		ID:        1,
		Name:      "Margherita",
		Price:     decimal.RequireFromString("6.00"),
		Available: true,
		Category:  model.Category{ID: 1, Name: "Pizze"},
	}
}
