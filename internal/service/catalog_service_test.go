package service

import (
	"context"
	"errors"
	"testing"

	"pizza-storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Menu(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)

	special := testProduct(3, "Bufalina", "9", pizze)
	special.IsMonthlySpecial = true
	off := testProduct(4, "Calzone", "8", pizze)
	off.Available = false

	api.On("Products", ctx, false).Return([]model.Product{
		testProduct(10, "Cola", "2.5", bibite),
		testProduct(1, "Margherita", "6", pizze),
		special,
		off,
	}, nil)

	svc := NewCatalogService(api, zerolog.Nop())

	menu, err := svc.Menu(ctx, "")
	require.NoError(t, err)
	require.Len(t, menu.Sections, 2)
	assert.Equal(t, "Pizze", menu.Sections[0].Category.Name)
	assert.Len(t, menu.Sections[0].Products, 2)
	assert.Equal(t, "Bibite", menu.Sections[1].Category.Name)
	require.Len(t, menu.Specials, 1)
	assert.Equal(t, "Bufalina", menu.Specials[0].Name)

	menu, err = svc.Menu(ctx, "bibite")
	require.NoError(t, err)
	require.Len(t, menu.Sections, 1)
	assert.Equal(t, int64(10), menu.Sections[0].Products[0].ID)
	assert.Empty(t, menu.Specials)

	api.AssertExpectations(t)
}

func TestCatalogService_MenuBackendError(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	boom := errors.New("boom")
	api.On("Products", ctx, false).Return(nil, boom)

	_, err := NewCatalogService(api, zerolog.Nop()).Menu(ctx, "")

	assert.ErrorIs(t, err, boom)
}

func TestCatalogService_Product(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	off := testProduct(4, "Calzone", "8", pizze)
	off.Available = false
	api.On("Products", ctx, true).Return([]model.Product{testProduct(1, "Margherita", "6", pizze), off}, nil)

	svc := NewCatalogService(api, zerolog.Nop())

	p, err := svc.Product(ctx, 4)
	require.NoError(t, err)
	assert.False(t, p.Available)

	_, err = svc.Product(ctx, 99)
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	_, err = svc.Product(ctx, 0)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   model.ProductInput
		wantErr bool
	}{
		{"valid", model.ProductInput{Name: "Ortolana", Price: decimal.NewFromInt(8), CategoryID: 1}, false},
		{"missing name", model.ProductInput{Price: decimal.NewFromInt(8), CategoryID: 1}, true},
		{"zero price", model.ProductInput{Name: "Free", CategoryID: 1}, true},
		{"missing category", model.ProductInput{Name: "Ortolana", Price: decimal.NewFromInt(8)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockBackend)
			if !tt.wantErr {
				api.On("CreateProduct", ctx, tt.input).Return(testProduct(20, tt.input.Name, "8", pizze), nil)
			}

			p, err := NewCatalogService(api, zerolog.Nop()).CreateProduct(ctx, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(20), p.ID)
		})
	}
}

func TestCatalogService_StaffMutations(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	toggled := testProduct(5, "Diavola", "7", pizze)
	toggled.Available = false
	api.On("ToggleAvailability", ctx, int64(5)).Return(toggled, nil)
	api.On("DeleteProduct", ctx, int64(5)).Return(nil)

	svc := NewCatalogService(api, zerolog.Nop())

	p, err := svc.ToggleAvailability(ctx, 5)
	require.NoError(t, err)
	assert.False(t, p.Available)
	assert.NoError(t, svc.DeleteProduct(ctx, 5))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, -1), model.ErrProductNotFound)

	api.AssertExpectations(t)
}
