package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// countRows returns order and order item totals across the database.
func countRows(t *testing.T, s *services) (orders, items int) {
	t.Helper()
	ctx := context.Background()
	all, err := s.orders.List(ctx, types.OrderFilter{})
	require.NoError(t, err)
	for _, o := range all {
		full, err := s.orders.Get(ctx, o.ID)
		require.NoError(t, err)
		items += len(full.Items)
	}
	return len(all), items
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("dal rice times three", func(t *testing.T) {
		s := setupServices(t)
		c := s.mustCustomer(t, "Alice", "9990001111")
		dal, err := s.menu.Create(ctx, types.MenuItemInput{Name: "Dal Rice", Price: 80, Category: "Lunch"})
		require.NoError(t, err)

		o, err := s.orders.PlaceOrder(ctx, types.PlaceOrderRequest{
			CustomerID: c.ID,
			Lines:      []types.OrderLine{{MenuItemID: dal.ID, Quantity: 3}},
		})
		require.NoError(t, err)
		assert.InDelta(t, 240.0, o.TotalAmount, 0.001)
		assert.Equal(t, types.StatusPending, o.Status)
		assert.Equal(t, c.Address, o.DeliveryAddress, "defaults to customer address")
		assert.Equal(t, "Alice", o.CustomerName)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 3, o.Items[0].Quantity)
		assert.InDelta(t, 80.0, o.Items[0].Price, 0.001)
		assert.InDelta(t, 240.0, o.Items[0].TotalPrice, 0.001)
	})

	t.Run("total rounds to cents", func(t *testing.T) {
		s := setupServices(t)
		c := s.mustCustomer(t, "Alice", "1")
		a := s.mustMenuItem(t, "Chai", 0.1)
		b := s.mustMenuItem(t, "Samosa", 0.2)

		o, err := s.orders.PlaceOrder(ctx, types.PlaceOrderRequest{
			CustomerID:      c.ID,
			DeliveryAddress: "Office",
			Lines:           []types.OrderLine{{MenuItemID: a.ID, Quantity: 1}, {MenuItemID: b.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.3, o.TotalAmount)
		assert.Equal(t, "Office", o.DeliveryAddress)
	})

	t.Run("total is fixed at placement", func(t *testing.T) {
		s := setupServices(t)
		c := s.mustCustomer(t, "Alice", "1")
		m := s.mustMenuItem(t, "Thali", 100)
		o, err := s.orders.PlaceOrder(ctx, types.PlaceOrderRequest{
			CustomerID: c.ID,
			Lines:      []types.OrderLine{{MenuItemID: m.ID, Quantity: 2}},
		})
		require.NoError(t, err)

		_, err = s.menu.Update(ctx, m.ID, types.MenuItemInput{Name: "Thali", Price: 150, Category: "Test"})
		require.NoError(t, err)

		got, err := s.orders.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.InDelta(t, 200.0, got.TotalAmount, 0.001)
		assert.InDelta(t, 100.0, got.Items[0].Price, 0.001)
	})

	failures := []struct {
		name    string
		req     func(c *types.Customer, ok, off *types.MenuItem) types.PlaceOrderRequest
		wantErr error
		wantMsg string
	}{
		{
			name: "unavailable item",
			req: func(c *types.Customer, ok, off *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: c.ID, Lines: []types.OrderLine{{MenuItemID: ok.ID, Quantity: 1}, {MenuItemID: off.ID, Quantity: 1}}}
			},
			wantErr: types.ErrInvalidData,
			wantMsg: `Menu item "Off Menu" is not available`,
		},
		{
			name: "missing item",
			req: func(c *types.Customer, ok, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: c.ID, Lines: []types.OrderLine{{MenuItemID: ok.ID, Quantity: 1}, {MenuItemID: 9999, Quantity: 1}}}
			},
			wantErr: types.ErrNotFound,
			wantMsg: "Menu item with ID 9999 not found",
		},
		{
			name: "missing customer",
			req: func(_ *types.Customer, ok, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: 9999, Lines: []types.OrderLine{{MenuItemID: ok.ID, Quantity: 1}}}
			},
			wantErr: types.ErrNotFound,
			wantMsg: "Customer not found",
		},
		{
			name: "zero quantity",
			req: func(c *types.Customer, ok, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: c.ID, Lines: []types.OrderLine{{MenuItemID: ok.ID, Quantity: 0}}}
			},
			wantErr: types.ErrInvalidData,
			wantMsg: "Invalid item at index 0: menu_item_id and quantity are required",
		},
		{
			name: "missing customer with bad line",
			req: func(_ *types.Customer, ok, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: 9999, Lines: []types.OrderLine{{MenuItemID: ok.ID, Quantity: 0}}}
			},
			wantErr: types.ErrNotFound,
			wantMsg: "Customer not found",
		},
		{
			name: "missing item before bad line",
			req: func(c *types.Customer, _, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: c.ID, Lines: []types.OrderLine{{MenuItemID: 9999, Quantity: 1}, {MenuItemID: 1, Quantity: 0}}}
			},
			wantErr: types.ErrNotFound,
			wantMsg: "Menu item with ID 9999 not found",
		},
		{
			name: "no lines",
			req: func(c *types.Customer, _, _ *types.MenuItem) types.PlaceOrderRequest {
				return types.PlaceOrderRequest{CustomerID: c.ID}
			},
			wantErr: types.ErrInvalidData,
		},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			s := setupServices(t)
			c := s.mustCustomer(t, "Alice", "1")
			ok := s.mustMenuItem(t, "On Menu", 50)
			off, err := s.menu.Create(ctx, types.MenuItemInput{Name: "Off Menu", Price: 70, Category: "Test", Available: boolPtr(false)})
			require.NoError(t, err)

			beforeOrders, beforeItems := countRows(t, s)
			_, err = s.orders.PlaceOrder(ctx, tt.req(c, ok, off))
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, types.Message(err))
			}

			afterOrders, afterItems := countRows(t, s)
			assert.Equal(t, beforeOrders, afterOrders, "no order row")
			assert.Equal(t, beforeItems, afterItems, "no order item rows")
		})
	}
}

func TestPlaceOrderConcurrent(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	c := s.mustCustomer(t, "Alice", "1")
	m := s.mustMenuItem(t, "Thali", 100)
	beforeOrders, beforeItems := countRows(t, s)

	const workers = 40
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.orders.PlaceOrder(ctx, types.PlaceOrderRequest{
				CustomerID: c.ID,
				Lines:      []types.OrderLine{{MenuItemID: m.ID, Quantity: 1}},
			})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	afterOrders, afterItems := countRows(t, s)
	assert.Equal(t, beforeOrders+workers, afterOrders)
	assert.Equal(t, beforeItems+workers, afterItems)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)
	c := s.mustCustomer(t, "Alice", "1")
	m := s.mustMenuItem(t, "Thali", 100)
	o, err := s.orders.PlaceOrder(ctx, types.PlaceOrderRequest{
		CustomerID: c.ID,
		Lines:      []types.OrderLine{{MenuItemID: m.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := s.orders.UpdateStatus(ctx, o.ID, "Out for Delivery")
	require.NoError(t, err)
	assert.Equal(t, types.StatusOutForDelivery, got.Status)

	_, err = s.orders.UpdateStatus(ctx, o.ID, "Shipped")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
	assert.Contains(t, types.Message(err), "Status must be one of: Pending, Confirmed")

	stored, err := s.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusOutForDelivery, stored.Status, "invalid update leaves status unchanged")

	got, err = s.orders.UpdateStatus(ctx, o.ID, "Pending")
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, got.Status, "backwards moves are allowed")

	_, err = s.orders.UpdateStatus(ctx, 9999, "Confirmed")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestOrderQueriesAndDelete(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	pending, err := s.orders.ByStatus(ctx, "Pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Jane Smith", pending[0].CustomerName)

	_, err = s.orders.ByStatus(ctx, "pending")
	assert.ErrorIs(t, err, types.ErrInvalidStatus, "status match is exact")

	byCustomer, err := s.orders.ByCustomer(ctx, pending[0].CustomerID)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)

	require.NoError(t, s.orders.Delete(ctx, pending[0].ID))
	_, err = s.orders.Get(ctx, pending[0].ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, s.orders.Delete(ctx, pending[0].ID), types.ErrNotFound)
}
