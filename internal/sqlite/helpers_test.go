package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// setupBackend attaches a Backend on a fresh data dir. The database is seeded
// with the sample rows.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// setupEmptyBackend attaches a Backend and removes the seeded rows.
func setupEmptyBackend(t *testing.T) *Backend {
	t.Helper()
	b := setupBackend(t)
	for _, stmt := range []string{
		"DELETE FROM order_items",
		"DELETE FROM orders",
		"DELETE FROM menu_items",
		"DELETE FROM customers",
	} {
		_, err := b.db.Exec(stmt)
		require.NoError(t, err)
	}
	return b
}
