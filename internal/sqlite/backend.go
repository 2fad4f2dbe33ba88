// Package sqlite implements the SQLite storage backend for TiffinCRM.
// A Backend owns one database file holding the customers, menu_items,
// orders, and order_items tables and hands out repositories over it.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// dsnOptions are appended to the database path. busy_timeout makes
// concurrent writers wait instead of failing; _txlock=immediate takes the
// write lock at BEGIN so a read-then-write transaction cannot deadlock.
const dsnOptions = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"

// Backend implements types.Backend on a single SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database file described by config, creating DataDir and
// the schema when missing and seeding sample data into an empty database.
// An existing file keeps its data.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, config.DBFileName())
	db, err := sql.Open("sqlite", "file:"+dbPath+dsnOptions)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := seedSampleData(db); err != nil {
		db.Close()
		return fmt.Errorf("seeding sample data: %w", err)
	}

	b.db = db
	b.config = config
	b.path = dbPath
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Path returns the database file path of an attached backend.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// querier returns the shared connection pool, or ErrDetached.
func (b *Backend) querier() (querier, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// Customers returns the customers repository.
func (b *Backend) Customers() types.CustomerRepository { return &customersTable{src: b} }

// Menu returns the menu items repository.
func (b *Backend) Menu() types.MenuRepository { return &menuTable{src: b} }

// Orders returns the orders repository.
func (b *Backend) Orders() types.OrderRepository { return &ordersTable{src: b} }

// Ping checks that the database answers a trivial query.
func (b *Backend) Ping(ctx context.Context) error {
	q, err := b.querier()
	if err != nil {
		return err
	}
	var one int
	if err := q.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// InTx runs fn inside one transaction. A nil return commits; an error or a
// panic rolls back.
func (b *Backend) InTx(ctx context.Context, fn func(tx types.Store) error) (err error) {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrDetached
	}
	db := b.db
	b.mu.RUnlock()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txStore{tx: tx}); err != nil {
		return rollback(tx, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// rollback aborts tx after cause. A failed rollback is joined to cause so
// callers can still match the original error kind.
func rollback(tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil {
		return errors.Join(cause, fmt.Errorf("rolling back: %w", err))
	}
	return cause
}

var _ types.Backend = (*Backend)(nil)
