// Package session keeps the logged-in profile between CLI runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/tiffincrm/internal/auth"
)

// FileName is the session file created in the config directory.
const FileName = "session.json"

// Store persists one profile as JSON.
type Store struct {
	path string
}

// NewStore returns a Store keeping its file in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the session file location.
func (s *Store) Path() string { return s.path }

// Save writes p, replacing any previous session.
func (s *Store) Save(p *auth.Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Load returns the saved profile, or nil when nobody is logged in. A file
// that does not decode is removed and treated as logged out.
func (s *Store) Load() (*auth.Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var p auth.Profile
	if err := json.Unmarshal(data, &p); err != nil || p.Role == "" {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return &p, nil
}

// Clear logs out. Clearing an empty session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
