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

// ordersTable implements types.OrderRepository over orders and order_items.
type ordersTable struct {
	src source
}

const orderColumns = `o.id, o.customer_id, o.customer_name, o.total_amount, o.status,
       o.order_date, o.delivery_address, o.created_at, o.updated_at,
       COALESCE(c.phone, ''), COALESCE(c.address, '')`

func (t *ordersTable) List(ctx context.Context, filter types.OrderFilter) ([]types.Order, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}

	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "o.status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.CustomerID != 0 {
		where = append(where, "o.customer_id = ?")
		args = append(args, filter.CustomerID)
	}

	query := "SELECT " + orderColumns + " FROM orders o LEFT JOIN customers c ON o.customer_id = c.id"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY o.created_at DESC, o.id DESC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []types.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		// Listings carry the phone only; the address comes with Get.
		o.CustomerAddress = ""
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (t *ordersTable) Get(ctx context.Context, id int64) (*types.Order, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders o LEFT JOIN customers c ON o.customer_id = c.id WHERE o.id = ?", id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NotFoundf("Order not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, order_id, menu_item_id, menu_item_name, quantity, price, (quantity * price) AS total_price
         FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	o.Items = []types.OrderItem{}
	for rows.Next() {
		var it types.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.MenuItemName, &it.Quantity, &it.Price, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (t *ordersTable) Create(ctx context.Context, o *types.Order) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	if o.Status == "" {
		o.Status = types.StatusPending
	}
	if o.OrderDate == "" {
		o.OrderDate = now.Format(types.OrderDateLayout)
	}

	res, err := q.ExecContext(ctx,
		`INSERT INTO orders (customer_id, customer_name, total_amount, status, order_date, delivery_address, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.CustomerID, o.CustomerName, o.TotalAmount, string(o.Status), o.OrderDate, o.DeliveryAddress,
		formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	if o.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading order id: %w", err)
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		res, err := q.ExecContext(ctx,
			"INSERT INTO order_items (order_id, menu_item_id, menu_item_name, quantity, price) VALUES (?, ?, ?, ?, ?)",
			o.ID, it.MenuItemID, it.MenuItemName, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("inserting order item %s: %w", it.MenuItemName, err)
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading order item id: %w", err)
		}
	}
	return nil
}

func (t *ordersTable) UpdateStatus(ctx context.Context, id int64, status types.OrderStatus) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}
	return checkAffected(res, types.NotFoundf("Order not found"))
}

func (t *ordersTable) Delete(ctx context.Context, id int64) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = ?", id); err != nil {
		return fmt.Errorf("deleting order items: %w", err)
	}
	res, err := q.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	return checkAffected(res, types.NotFoundf("Order not found"))
}

func (t *ordersTable) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	q, err := t.src.querier()
	if err != nil {
		return 0, err
	}
	var n int
	if err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE customer_id = ?", customerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customer orders: %w", err)
	}
	return n, nil
}

func scanOrder(row rowScanner) (*types.Order, error) {
	var o types.Order
	var status, createdAt, updatedAt string
	err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.TotalAmount, &status,
		&o.OrderDate, &o.DeliveryAddress, &createdAt, &updatedAt,
		&o.CustomerPhone, &o.CustomerAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning order: %w", err)
	}
	o.Status = types.OrderStatus(status)
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing order created_at: %w", err)
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing order updated_at: %w", err)
	}
	return &o, nil
}
