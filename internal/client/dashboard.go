package client

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// dashboardListSize caps the recent order and menu lists.
const dashboardListSize = 5

// Stats summarises the business for the dashboard.
type Stats struct {
	TotalCustomers   int              `json:"total_customers"`
	TotalOrders      int              `json:"total_orders"`
	PendingOrders    int              `json:"pending_orders"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	RecentOrders     []types.Order    `json:"recent_orders"`
	PopularMenuItems []types.MenuItem `json:"popular_menu_items"`
}

// Dashboard fetches customers, orders, and menu concurrently and computes
// Stats. Any failed fetch fails the whole call.
func (c *Client) Dashboard(ctx context.Context) (*Stats, error) {
	var (
		customers []types.Customer
		orders    []types.Order
		menu      []types.MenuItem
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = c.ListCustomers(ctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = c.ListOrders(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		menu, err = c.ListMenu(ctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ComputeStats(customers, orders, menu), nil
}

// ComputeStats derives Stats from fetched collections. Orders are expected
// newest first, as the API returns them.
func ComputeStats(customers []types.Customer, orders []types.Order, menu []types.MenuItem) *Stats {
	s := &Stats{
		TotalCustomers: len(customers),
		TotalOrders:    len(orders),
		TotalRevenue:   decimal.Zero,
	}
	for _, o := range orders {
		if o.Status == types.StatusPending {
			s.PendingOrders++
		}
		s.TotalRevenue = s.TotalRevenue.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	s.RecentOrders = head(orders, dashboardListSize)
	s.PopularMenuItems = head(menu, dashboardListSize)
	return s
}

func head[T any](s []T, n int) []T {
	if len(s) < n {
		n = len(s)
	}
	out := make([]T, n)
	copy(out, s[:n])
	return out
}
