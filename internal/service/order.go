package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// OrderService places orders and moves them through their lifecycle.
type OrderService struct {
	store  types.Store
	logger *logger.Logger
	now    func() time.Time
}

// NewOrderService creates an OrderService over store.
func NewOrderService(store types.Store, log *logger.Logger) *OrderService {
	return &OrderService{
		store:  store,
		logger: log.WithComponent("order_service"),
		now:    time.Now,
	}
}

// List returns orders matching filter, newest first.
func (s *OrderService) List(ctx context.Context, filter types.OrderFilter) ([]types.Order, error) {
	return s.store.Orders().List(ctx, filter)
}

// Get returns one order with its items, or ErrNotFound.
func (s *OrderService) Get(ctx context.Context, id int64) (*types.Order, error) {
	return s.store.Orders().Get(ctx, id)
}

// ByStatus returns the orders in status raw. An unknown status is
// ErrInvalidStatus.
func (s *OrderService) ByStatus(ctx context.Context, raw string) ([]types.Order, error) {
	status, err := types.ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, types.OrderFilter{Status: status})
}

// ByCustomer returns the orders placed by customerID.
func (s *OrderService) ByCustomer(ctx context.Context, customerID int64) ([]types.Order, error) {
	return s.List(ctx, types.OrderFilter{CustomerID: customerID})
}

// PlaceOrder validates req against current customers and menu and stores
// the order with its items in one transaction. The customer is resolved
// before any line is checked; each line is then checked for shape,
// existence and availability in turn. The total is the sum of
// current price times quantity, rounded to cents; each item keeps the price
// it was charged.
func (s *OrderService) PlaceOrder(ctx context.Context, req types.PlaceOrderRequest) (*types.Order, error) {
	if req.CustomerID <= 0 || len(req.Lines) == 0 {
		return nil, types.Invalidf("Customer ID and items array are required")
	}

	var placed *types.Order
	err := s.store.InTx(ctx, func(tx types.Store) error {
		customer, err := tx.Customers().Get(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		order := &types.Order{
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			Status:          types.StatusPending,
			OrderDate:       s.now().UTC().Format(types.OrderDateLayout),
			DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		}
		if order.DeliveryAddress == "" {
			order.DeliveryAddress = customer.Address
		}

		total := decimal.Zero
		for i, line := range req.Lines {
			if line.MenuItemID <= 0 || line.Quantity <= 0 {
				return types.Invalidf("Invalid item at index %d: menu_item_id and quantity are required", i)
			}
			item, err := tx.Menu().Get(ctx, line.MenuItemID)
			if types.IsNotFound(err) {
				return types.NotFoundf("Menu item with ID %d not found", line.MenuItemID)
			}
			if err != nil {
				return err
			}
			if !item.Available {
				return types.Invalidf("Menu item %q is not available", item.Name)
			}
			total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
			order.Items = append(order.Items, types.OrderItem{
				MenuItemID:   item.ID,
				MenuItemName: item.Name,
				Quantity:     line.Quantity,
				Price:        item.Price,
			})
		}
		order.TotalAmount = total.Round(2).InexactFloat64()

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		placed, err = tx.Orders().Get(ctx, order.ID)
		return err
	})
	if err != nil {
		s.logger.Warn("place order failed", "customer_id", req.CustomerID, "error", err)
		return nil, err
	}
	s.logger.Info("order placed", "id", placed.ID, "customer_id", placed.CustomerID, "total", placed.TotalAmount)
	return placed, nil
}

// UpdateStatus moves order id to status raw. An invalid status leaves the
// stored order untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, raw string) (*types.Order, error) {
	next, err := types.ParseOrderStatus(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}

	var updated *types.Order
	err = s.store.InTx(ctx, func(tx types.Store) error {
		o, err := tx.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if _, err := o.Status.TransitionTo(next); err != nil {
			return err
		}
		if err := tx.Orders().UpdateStatus(ctx, id, next); err != nil {
			return err
		}
		updated, err = tx.Orders().Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("update order status failed", "id", id, "status", raw, "error", err)
		return nil, err
	}
	s.logger.Info("order status updated", "id", id, "status", next)
	return updated, nil
}

// Delete removes order id and its items.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(tx types.Store) error {
		return tx.Orders().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete order failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("order deleted", "id", id)
	return nil
}
