package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pizza-storefront/internal/model"
	"pizza-storefront/internal/orderdetail"
	"pizza-storefront/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pastOrderText = "Cliente: Mario\nIndirizzo: Via Roma 1, Vinovo\nTel: 1\nOrario Richiesto: 19:30\n---\n" +
	"2x Margherita - €12.00\n1x Cola - €2.50\n1x Tiramisù - €4.00\n---\nConsegna: €2.00\nTOTALE: €20.50"

func newTracker(api *MockBackend) (*fixture, TrackerService) {
	f := newFixture()
	svc := NewTrackerService(api, api, f.session, f.cart, f.store, time.Minute, zerolog.Nop())
	return f, svc
}

func TestTrackerService_TodayAndHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 20, 0, 0, 0, time.Local)
	yesterday := now.Add(-24 * time.Hour)

	api := new(MockBackend)
	f, svc := newTracker(api)
	require.NoError(t, f.session.SetUser(ctx, model.User{ID: 7}))

	api.On("UserOrders", ctx, int64(7)).Return([]model.Order{
		{ID: 1, Status: "COMPLETATO", OrderDate: model.NewTimestamp(yesterday)},
		{ID: 2, Status: "RIFIUTATO", OrderDate: model.NewTimestamp(yesterday)},
		{ID: 3, Status: "RIFIUTATO", OrderDate: model.NewTimestamp(now.Add(-time.Hour))},
		{ID: 4, Status: "IN_CONSEGNA", OrderDate: model.NewTimestamp(now.Add(-30 * time.Minute))},
		{ID: 5, Status: "INVIATO", OrderDate: model.NewTimestamp(yesterday)},
	}, nil)

	require.NoError(t, svc.Refresh(ctx))

	today := svc.Today(now)
	require.Len(t, today, 3)
	assert.Equal(t, int64(4), today[0].ID)
	assert.Equal(t, 85, today[0].Progress)
	assert.True(t, today[0].HasProgress)
	assert.Equal(t, int64(3), today[1].ID)
	assert.Equal(t, "REJECTED", today[1].State)
	assert.False(t, today[1].HasProgress)
	assert.Equal(t, int64(5), today[2].ID)

	history := svc.History()
	require.Len(t, history, 3)
	assert.Equal(t, int64(3), history[0].ID)
}

func TestTrackerService_NoUser(t *testing.T) {
	api := new(MockBackend)
	_, svc := newTracker(api)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Empty(t, svc.Today(time.Now()))
	api.AssertNotCalled(t, "UserOrders", mock.Anything, mock.Anything)

	_, err := svc.Reorder(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrAuthRequired)
}

func TestTrackerService_FailedPollKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	f, svc := newTracker(api)
	require.NoError(t, f.session.SetUser(ctx, model.User{ID: 7}))

	api.On("UserOrders", ctx, int64(7)).Return([]model.Order{{ID: 1, Status: "COMPLETATO"}}, nil).Once()
	api.On("UserOrders", ctx, int64(7)).Return(nil, errors.New("timeout")).Once()

	require.NoError(t, svc.Refresh(ctx))
	assert.Error(t, svc.Refresh(ctx))
	assert.Len(t, svc.History(), 1)
}

func TestTrackerService_Reorder(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	f, svc := newTracker(api)
	require.NoError(t, f.session.SetUser(ctx, model.User{ID: 7}))

	api.On("UserOrders", ctx, int64(7)).Return([]model.Order{{ID: 9, Status: "COMPLETATO", OrderDetails: pastOrderText}}, nil)
	api.On("Products", ctx, false).Return([]model.Product{
		testProduct(1, "Margherita", "6", pizze),
		testProduct(10, "Cola", "2.5", bibite),
	}, nil)

	result, err := svc.Reorder(ctx, 9)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Added)
	assert.Equal(t, []string{"Tiramisù"}, result.Skipped)
	snap := f.cart.Snapshot()
	assert.Equal(t, 3, snap.Count)
	assert.Len(t, snap.Items, 2)
	assert.True(t, snap.Open)

	_, err = svc.Reorder(ctx, 404)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestTrackerService_ReorderPrefersSavedSummary(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	f, svc := newTracker(api)
	require.NoError(t, f.session.SetUser(ctx, model.User{ID: 7}))

	saved, err := json.Marshal(orderdetail.Summary{Lines: []orderdetail.Line{{Quantity: 4, Name: "Cola"}}})
	require.NoError(t, err)
	require.NoError(t, f.store.Set(ctx, storage.SummaryKey(9), saved))

	api.On("UserOrders", ctx, int64(7)).Return([]model.Order{{ID: 9, Status: "COMPLETATO", OrderDetails: "unparseable"}}, nil)
	api.On("Products", ctx, false).Return([]model.Product{testProduct(10, "Cola", "2.5", bibite)}, nil)

	result, err := svc.Reorder(ctx, 9)

	require.NoError(t, err)
	assert.Equal(t, 4, result.Added)
	assert.Equal(t, 4, f.cart.Count())
}

func TestTrackerService_Receipt(t *testing.T) {
	ctx := context.Background()
	api := new(MockBackend)
	f, svc := newTracker(api)
	require.NoError(t, f.session.SetUser(ctx, model.User{ID: 7}))
	api.On("UserOrders", ctx, int64(7)).Return([]model.Order{{ID: 9, Status: "COMPLETATO", OrderDetails: pastOrderText}}, nil)
	require.NoError(t, svc.Refresh(ctx))

	rows, err := svc.Receipt(ctx, 9)

	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "2 x Margherita", rows[0].Label)
	assert.True(t, rows[4].Total)
	assert.Equal(t, "20.50", rows[4].Amount)
}

func TestTrackerService_RunStopsWithContext(t *testing.T) {
	api := new(MockBackend)
	_, svc := newTracker(api)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
