package session

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tiffincrm/internal/auth"
)

func TestStore(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, s *Store)
	}{
		{
			name: "load without file is logged out",
			check: func(t *testing.T, s *Store) {
				p, err := s.Load()
				require.NoError(t, err)
				assert.Nil(t, p)
			},
		},
		{
			name: "save then load round trips",
			check: func(t *testing.T, s *Store) {
				want := &auth.Profile{ID: 2, Name: "John Doe", Email: "user@tiffin.com", Role: auth.RoleUser, Phone: "9876543210"}
				require.NoError(t, s.Save(want))

				got, err := s.Load()
				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.True(t, got.IsUser())
			},
		},
		{
			name: "corrupt file is removed",
			check: func(t *testing.T, s *Store) {
				require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

				p, err := s.Load()
				require.NoError(t, err)
				assert.Nil(t, p)
				assert.NoFileExists(t, s.Path())
			},
		},
		{
			name: "clear logs out and is idempotent",
			check: func(t *testing.T, s *Store) {
				require.NoError(t, s.Save(&auth.Profile{ID: 1, Role: auth.RoleAdmin}))
				require.NoError(t, s.Clear())
				require.NoError(t, s.Clear())

				p, err := s.Load()
				require.NoError(t, err)
				assert.Nil(t, p)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewStore(t.TempDir()))
		})
	}
}
