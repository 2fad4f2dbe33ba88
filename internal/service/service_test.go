package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/internal/sqlite"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// services bundles the three services over one fresh backend.
type services struct {
	store     *sqlite.Backend
	customers *CustomerService
	menu      *MenuService
	orders    *OrderService
}

// setupServices attaches a seeded SQLite backend in a temp dir.
func setupServices(t *testing.T) *services {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })

	log := logger.Discard()
	return &services{
		store:     b,
		customers: NewCustomerService(b, log),
		menu:      NewMenuService(b, log),
		orders:    NewOrderService(b, log),
	}
}

// mustCustomer creates a customer with a unique phone.
func (s *services) mustCustomer(t *testing.T, name, phone string) *types.Customer {
	t.Helper()
	c, err := s.customers.Create(context.Background(), types.CustomerInput{
		Name: name, Phone: phone, Address: name + " Lane", Plan: types.PlanWeekly,
	})
	require.NoError(t, err)
	return c
}

// mustMenuItem creates an available menu item.
func (s *services) mustMenuItem(t *testing.T, name string, price float64) *types.MenuItem {
	t.Helper()
	m, err := s.menu.Create(context.Background(), types.MenuItemInput{
		Name: name, Price: price, Category: "Test",
	})
	require.NoError(t, err)
	return m
}
