package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// Tests for the orders table: create with items, listing joins, filters,
// status updates, and deletion.

// orderFixture creates one customer and two menu items.
func orderFixture(t *testing.T, b *Backend) (*types.Customer, *types.MenuItem, *types.MenuItem) {
	t.Helper()
	ctx := context.Background()
	c := &types.Customer{Name: "Alice", Phone: "9990001111", Address: "A St", Plan: types.PlanWeekly}
	require.NoError(t, b.Customers().Create(ctx, c))
	dal := &types.MenuItem{Name: "Dal Rice", Price: 80, Category: types.CategoryVegetarian, Available: true}
	require.NoError(t, b.Menu().Create(ctx, dal))
	paneer := &types.MenuItem{Name: "Paneer Masala", Price: 100, Category: types.CategoryVegetarian, Available: true}
	require.NoError(t, b.Menu().Create(ctx, paneer))
	return c, dal, paneer
}

func newOrder(c *types.Customer, items ...types.OrderItem) *types.Order {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return &types.Order{
		CustomerID:      c.ID,
		CustomerName:    c.Name,
		TotalAmount:     total,
		DeliveryAddress: c.Address,
		Items:           items,
	}
}

func TestOrdersTable(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "create defaults status and date and stores items",
			check: func(t *testing.T, b *Backend) {
				c, dal, paneer := orderFixture(t, b)
				o := newOrder(c,
					types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 2, Price: dal.Price},
					types.OrderItem{MenuItemID: paneer.ID, MenuItemName: paneer.Name, Quantity: 1, Price: paneer.Price},
				)
				require.NoError(t, b.Orders().Create(ctx, o))
				assert.NotZero(t, o.ID)
				assert.Equal(t, types.StatusPending, o.Status)
				assert.Equal(t, time.Now().UTC().Format(types.OrderDateLayout), o.OrderDate)
				for _, it := range o.Items {
					assert.NotZero(t, it.ID)
					assert.Equal(t, o.ID, it.OrderID)
				}

				got, err := b.Orders().Get(ctx, o.ID)
				require.NoError(t, err)
				assert.InDelta(t, 260.0, got.TotalAmount, 0.001)
				assert.Equal(t, "9990001111", got.CustomerPhone)
				assert.Equal(t, "A St", got.CustomerAddress)
				require.Len(t, got.Items, 2)
				assert.Equal(t, "Dal Rice", got.Items[0].MenuItemName)
				assert.InDelta(t, 160.0, got.Items[0].TotalPrice, 0.001)
				assert.InDelta(t, 100.0, got.Items[1].TotalPrice, 0.001)
			},
		},
		{
			name: "item snapshots survive menu changes",
			check: func(t *testing.T, b *Backend) {
				c, dal, _ := orderFixture(t, b)
				o := newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 1, Price: dal.Price})
				require.NoError(t, b.Orders().Create(ctx, o))

				dal.Price = 95
				dal.Name = "Dal Rice Special"
				require.NoError(t, b.Menu().Update(ctx, dal))

				got, err := b.Orders().Get(ctx, o.ID)
				require.NoError(t, err)
				assert.Equal(t, "Dal Rice", got.Items[0].MenuItemName)
				assert.InDelta(t, 80.0, got.Items[0].Price, 0.001)
				assert.InDelta(t, 80.0, got.TotalAmount, 0.001)
			},
		},
		{
			name: "list joins phone and filters",
			check: func(t *testing.T, b *Backend) {
				c, dal, _ := orderFixture(t, b)
				first := newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 1, Price: dal.Price})
				require.NoError(t, b.Orders().Create(ctx, first))
				second := newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 2, Price: dal.Price})
				second.Status = types.StatusDelivered
				require.NoError(t, b.Orders().Create(ctx, second))

				all, err := b.Orders().List(ctx, types.OrderFilter{})
				require.NoError(t, err)
				require.Len(t, all, 2)
				assert.Equal(t, second.ID, all[0].ID, "newest first")
				assert.Equal(t, "9990001111", all[0].CustomerPhone)
				assert.Empty(t, all[0].CustomerAddress)
				assert.Nil(t, all[0].Items)

				delivered, err := b.Orders().List(ctx, types.OrderFilter{Status: types.StatusDelivered})
				require.NoError(t, err)
				require.Len(t, delivered, 1)
				assert.Equal(t, second.ID, delivered[0].ID)

				byCustomer, err := b.Orders().List(ctx, types.OrderFilter{CustomerID: c.ID + 100})
				require.NoError(t, err)
				assert.Empty(t, byCustomer)
			},
		},
		{
			name: "update status",
			check: func(t *testing.T, b *Backend) {
				c, dal, _ := orderFixture(t, b)
				o := newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 1, Price: dal.Price})
				require.NoError(t, b.Orders().Create(ctx, o))
				require.NoError(t, b.Orders().UpdateStatus(ctx, o.ID, types.StatusConfirmed))

				got, err := b.Orders().Get(ctx, o.ID)
				require.NoError(t, err)
				assert.Equal(t, types.StatusConfirmed, got.Status)

				assert.ErrorIs(t, b.Orders().UpdateStatus(ctx, 999, types.StatusConfirmed), types.ErrNotFound)
			},
		},
		{
			name: "delete removes order and its items",
			check: func(t *testing.T, b *Backend) {
				c, dal, _ := orderFixture(t, b)
				o := newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 1, Price: dal.Price})
				require.NoError(t, b.Orders().Create(ctx, o))
				require.NoError(t, b.Orders().Delete(ctx, o.ID))

				_, err := b.Orders().Get(ctx, o.ID)
				assert.ErrorIs(t, err, types.ErrNotFound)
				assert.Equal(t, "Order not found", types.Message(err))

				var n int
				require.NoError(t, b.db.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = ?", o.ID).Scan(&n))
				assert.Zero(t, n)

				assert.ErrorIs(t, b.Orders().Delete(ctx, o.ID), types.ErrNotFound)
			},
		},
		{
			name: "count by customer",
			check: func(t *testing.T, b *Backend) {
				c, dal, _ := orderFixture(t, b)
				n, err := b.Orders().CountByCustomer(ctx, c.ID)
				require.NoError(t, err)
				assert.Zero(t, n)

				require.NoError(t, b.Orders().Create(ctx, newOrder(c, types.OrderItem{MenuItemID: dal.ID, MenuItemName: dal.Name, Quantity: 1, Price: dal.Price})))
				n, err = b.Orders().CountByCustomer(ctx, c.ID)
				require.NoError(t, err)
				assert.Equal(t, 1, n)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, setupEmptyBackend(t))
		})
	}
}
