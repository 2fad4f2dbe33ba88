package service

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/tiffincrm/internal/logger"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// MenuService manages the dish catalogue.
type MenuService struct {
	store  types.Store
	logger *logger.Logger
}

// NewMenuService creates a MenuService over store.
func NewMenuService(store types.Store, log *logger.Logger) *MenuService {
	return &MenuService{store: store, logger: log.WithComponent("menu_service")}
}

// List returns menu items matching filter, ordered by category then name.
func (s *MenuService) List(ctx context.Context, filter types.MenuFilter) ([]types.MenuItem, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	return s.store.Menu().List(ctx, filter)
}

// Available returns the items that can currently be ordered.
func (s *MenuService) Available(ctx context.Context) ([]types.MenuItem, error) {
	return s.List(ctx, types.MenuFilter{AvailableOnly: true})
}

// ByCategory returns the items in category.
func (s *MenuService) ByCategory(ctx context.Context, category string) ([]types.MenuItem, error) {
	return s.List(ctx, types.MenuFilter{Category: category})
}

// Get returns one item or ErrNotFound.
func (s *MenuService) Get(ctx context.Context, id int64) (*types.MenuItem, error) {
	return s.store.Menu().Get(ctx, id)
}

// Create adds a menu item. Available defaults to true.
func (s *MenuService) Create(ctx context.Context, in types.MenuItemInput) (*types.MenuItem, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	m := &types.MenuItem{Name: in.Name, Price: in.Price, Category: in.Category, Available: true}
	if in.Available != nil {
		m.Available = *in.Available
	}

	err := s.store.InTx(ctx, func(tx types.Store) error {
		if err := checkMenuName(ctx, tx, in.Name, in.Category, 0); err != nil {
			return err
		}
		return tx.Menu().Create(ctx, m)
	})
	if err != nil {
		s.logger.Warn("create menu item failed", "name", in.Name, "error", err)
		return nil, err
	}
	s.logger.Info("menu item created", "id", m.ID, "name", m.Name)
	return m, nil
}

// Update replaces the writable fields of item id. A nil in.Available keeps
// the stored flag.
func (s *MenuService) Update(ctx context.Context, id int64, in types.MenuItemInput) (*types.MenuItem, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *types.MenuItem
	err := s.store.InTx(ctx, func(tx types.Store) error {
		m, err := tx.Menu().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := checkMenuName(ctx, tx, in.Name, in.Category, id); err != nil {
			return err
		}
		m.Name, m.Price, m.Category = in.Name, in.Price, in.Category
		if in.Available != nil {
			m.Available = *in.Available
		}
		if err := tx.Menu().Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		s.logger.Warn("update menu item failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("menu item updated", "id", id)
	return updated, nil
}

// Delete removes item id. Past order lines keep their snapshots.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Menu().Delete(ctx, id); err != nil {
		s.logger.Warn("delete menu item failed", "id", id, "error", err)
		return err
	}
	s.logger.Info("menu item deleted", "id", id)
	return nil
}

// ToggleAvailability flips the available flag of item id and returns the
// updated item.
func (s *MenuService) ToggleAvailability(ctx context.Context, id int64) (*types.MenuItem, error) {
	var item *types.MenuItem
	err := s.store.InTx(ctx, func(tx types.Store) error {
		m, err := tx.Menu().Get(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Menu().SetAvailability(ctx, id, !m.Available); err != nil {
			return err
		}
		item, err = tx.Menu().Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Warn("toggle availability failed", "id", id, "error", err)
		return nil, err
	}
	s.logger.Info("menu item availability changed", "id", id, "available", item.Available)
	return item, nil
}

func checkMenuName(ctx context.Context, tx types.Store, name, category string, excludeID int64) error {
	taken, err := tx.Menu().NameTaken(ctx, name, category, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return types.Conflictf("Menu item with this name already exists in this category")
	}
	return nil
}
