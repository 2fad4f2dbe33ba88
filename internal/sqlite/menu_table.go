package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// menuTable implements types.MenuRepository.
type menuTable struct {
	src source
}

const menuColumns = "id, name, price, category, available, created_at, updated_at"

func (t *menuTable) List(ctx context.Context, filter types.MenuFilter) ([]types.MenuItem, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.AvailableOnly {
		where = append(where, "available = 1")
	}

	query := "SELECT " + menuColumns + " FROM menu_items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category, name"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	items := []types.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (t *menuTable) Get(ctx context.Context, id int64) (*types.MenuItem, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx, "SELECT "+menuColumns+" FROM menu_items WHERE id = ?", id)
	m, err := scanMenuItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NotFoundf("Menu item not found")
	}
	return m, err
}

func (t *menuTable) Create(ctx context.Context, m *types.MenuItem) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := q.ExecContext(ctx,
		"INSERT INTO menu_items (name, price, category, available, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		m.Name, m.Price, m.Category, boolToInt(m.Available), formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading menu item id: %w", err)
	}
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

func (t *menuTable) Update(ctx context.Context, m *types.MenuItem) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := q.ExecContext(ctx,
		"UPDATE menu_items SET name = ?, price = ?, category = ?, available = ?, updated_at = ? WHERE id = ?",
		m.Name, m.Price, m.Category, boolToInt(m.Available), formatTime(now), m.ID)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	if err := checkAffected(res, types.NotFoundf("Menu item not found")); err != nil {
		return err
	}
	m.UpdatedAt = now
	return nil
}

func (t *menuTable) Delete(ctx context.Context, id int64) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}
	return checkAffected(res, types.NotFoundf("Menu item not found"))
}

func (t *menuTable) SetAvailability(ctx context.Context, id int64, available bool) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx,
		"UPDATE menu_items SET available = ?, updated_at = ? WHERE id = ?",
		boolToInt(available), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating menu item availability: %w", err)
	}
	return checkAffected(res, types.NotFoundf("Menu item not found"))
}

func (t *menuTable) NameTaken(ctx context.Context, name, category string, excludeID int64) (bool, error) {
	q, err := t.src.querier()
	if err != nil {
		return false, err
	}
	var id int64
	err = q.QueryRowContext(ctx,
		"SELECT id FROM menu_items WHERE name = ? AND category = ? AND id != ? LIMIT 1",
		name, category, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking menu item name: %w", err)
	}
	return true, nil
}

func scanMenuItem(row rowScanner) (*types.MenuItem, error) {
	var m types.MenuItem
	var available int
	var createdAt, updatedAt string
	if err := row.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &available, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning menu item: %w", err)
	}
	m.Available = available != 0
	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing menu item created_at: %w", err)
	}
	if m.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing menu item updated_at: %w", err)
	}
	return &m, nil
}
