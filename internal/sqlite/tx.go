package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// querier is the subset of *sql.DB and *sql.Tx the tables use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// source hands a querier to a table: the pool for a Backend, the open
// transaction for a txStore.
type source interface {
	querier() (querier, error)
}

// txStore is the Store passed to InTx callbacks.
type txStore struct {
	tx *sql.Tx
}

func (s *txStore) querier() (querier, error) { return s.tx, nil }

func (s *txStore) Customers() types.CustomerRepository { return &customersTable{src: s} }

func (s *txStore) Menu() types.MenuRepository { return &menuTable{src: s} }

func (s *txStore) Orders() types.OrderRepository { return &ordersTable{src: s} }

// InTx on a transaction-bound store joins the open transaction.
func (s *txStore) InTx(_ context.Context, fn func(tx types.Store) error) error {
	return fn(s)
}

func (s *txStore) Ping(ctx context.Context) error {
	var one int
	return s.tx.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

var _ types.Store = (*txStore)(nil)

// Timestamps are stored as RFC3339 UTC text.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Rows written with CURRENT_TIMESTAMP by other tools.
	return time.Parse("2006-01-02 15:04:05", s)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// checkAffected turns a zero-row write into ErrNotFound.
func checkAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
