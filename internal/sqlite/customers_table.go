package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// customersTable implements types.CustomerRepository.
type customersTable struct {
	src source
}

const customerColumns = "id, name, phone, address, plan, created_at, updated_at"

func (t *customersTable) List(ctx context.Context) ([]types.Customer, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx,
		"SELECT "+customerColumns+" FROM customers ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	return scanCustomers(rows)
}

func (t *customersTable) Search(ctx context.Context, term string) ([]types.Customer, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}
	like := "%" + term + "%"
	rows, err := q.QueryContext(ctx,
		"SELECT "+customerColumns+` FROM customers
         WHERE name LIKE ? OR phone LIKE ? OR address LIKE ?
         ORDER BY created_at DESC, id DESC`,
		like, like, like)
	if err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	return scanCustomers(rows)
}

func (t *customersTable) Get(ctx context.Context, id int64) (*types.Customer, error) {
	q, err := t.src.querier()
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = ?", id)
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.NotFoundf("Customer not found")
	}
	return c, err
}

func (t *customersTable) Create(ctx context.Context, c *types.Customer) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := q.ExecContext(ctx,
		"INSERT INTO customers (name, phone, address, plan, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.Name, c.Phone, c.Address, string(c.Plan), formatTime(now), formatTime(now))
	if isUniqueViolation(err) {
		return types.Conflictf("Phone number already exists")
	}
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading customer id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (t *customersTable) Update(ctx context.Context, c *types.Customer) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	res, err := q.ExecContext(ctx,
		"UPDATE customers SET name = ?, phone = ?, address = ?, plan = ?, updated_at = ? WHERE id = ?",
		c.Name, c.Phone, c.Address, string(c.Plan), formatTime(now), c.ID)
	if isUniqueViolation(err) {
		return types.Conflictf("Phone number already exists")
	}
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	if err := checkAffected(res, types.NotFoundf("Customer not found")); err != nil {
		return err
	}
	c.UpdatedAt = now
	return nil
}

func (t *customersTable) Delete(ctx context.Context, id int64) error {
	q, err := t.src.querier()
	if err != nil {
		return err
	}
	res, err := q.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	return checkAffected(res, types.NotFoundf("Customer not found"))
}

func (t *customersTable) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	q, err := t.src.querier()
	if err != nil {
		return false, err
	}
	var id int64
	err = q.QueryRowContext(ctx,
		"SELECT id FROM customers WHERE phone = ? AND id != ? LIMIT 1", phone, excludeID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking phone: %w", err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*types.Customer, error) {
	var c types.Customer
	var plan, createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &plan, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning customer: %w", err)
	}
	c.Plan = types.Plan(plan)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing customer created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing customer updated_at: %w", err)
	}
	return &c, nil
}

func scanCustomers(rows *sql.Rows) ([]types.Customer, error) {
	defer rows.Close()
	customers := []types.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}
