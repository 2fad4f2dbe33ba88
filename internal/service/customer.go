package service

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// CustomerService manages subscribers.
type CustomerService struct {
	store  types.Store
	logger *logger.Logger
}

// NewCustomerService creates a CustomerService over store.
func NewCustomerService(store types.Store, log *logger.Logger) *CustomerService {
	return &CustomerService{store: store, logger: log.WithComponent("customer_service")}
}

// List returns every customer, newest first.
func (s *CustomerService) List(ctx context.Context) ([]types.Customer, error) {
	return s.store.Customers().List(ctx)
}

// Get returns one customer or ErrNotFound.
func (s *CustomerService) Get(ctx context.Context, id int64) (*types.Customer, error) {
	return s.store.Customers().Get(ctx, id)
}

// Search returns customers whose name, phone, or address contains term.
func (s *CustomerService) Search(ctx context.Context, term string) ([]types.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.List(ctx)
	}
	return s.store.Customers().Search(ctx, term)
}

// Create adds a customer after checking required fields and phone
// uniqueness.
func (s *CustomerService) Create(ctx context.Context, in types.CustomerInput) (*types.Customer, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := &types.Customer{Name: in.Name, Phone: in.Phone, Address: in.Address, Plan: in.Plan}
	err := s.store.InTx(ctx, func(tx types.Store) error {
		taken, err := tx.Customers().PhoneTaken(ctx, in.Phone, 0)
		if err != nil {
			return err
		}
		if taken {
			return types.Conflictf("Phone number already exists")
		}
		return tx.Customers().Create(ctx, c)
	})
	if err != nil {
		s.logger.Warn("create customer failed", "phone", in.Phone, "error", err)
		return nil, err
	}
	s.logger.Info("customer created", "id", c.ID)
	return c, nil
}

// Update replaces every writable field of customer id.
func (s *CustomerService) Update(ctx context.Context, id int64, in types.CustomerInput) (*types.Customer, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *types.Customer
	err := s.store.InTx(ctx, func(tx types.Store) error {
		c, err := tx.Customers().Get(ctx, id)
		if err != nil {
			return err
		}
		taken, err := tx.Customers().PhoneTaken(ctx, in.Phone, id)
		if err != nil {
			return err
		}
		if taken {
			return types.Conflictf("Phone number already exists")
		}
		c.Name, c.Phone, c.Address, c.Plan = in.Name, in.Phone, in.Address, in.Plan
		if err := tx.Customers().Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		s.logger.Warn("update customer failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("customer updated", "id", id)
	return updated, nil
}

// Delete removes a customer that has no orders.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(tx types.Store) error {
		if _, err := tx.Customers().Get(ctx, id); err != nil {
			return err
		}
		n, err := tx.Orders().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return types.Conflictf("Cannot delete customer with existing orders")
		}
		return tx.Customers().Delete(ctx, id)
	})
	if err != nil {
		s.logger.Warn("delete customer failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("customer deleted", "id", id)
	return nil
}
