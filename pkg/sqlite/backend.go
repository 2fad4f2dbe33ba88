// Package sqlite exposes the SQLite storage backend to programs outside
// this module, such as import scripts that write to a TiffinCRM database
// directly.
package sqlite

import (
	"github.com/mesh-intelligence/tiffincrm/internal/sqlite"
	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "/var/lib/tiffincrm",
//	})
//	defer backend.Detach()
func NewBackend() types.Backend {
	return sqlite.NewBackend()
}
