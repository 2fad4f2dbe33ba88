package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantID   int64
		wantRole string
		wantErr  bool
	}{
		{name: "admin", email: "admin@tiffin.com", password: "admin123", role: RoleAdmin, wantID: 1, wantRole: RoleAdmin},
		{name: "missing role", email: "admin@tiffin.com", password: "admin123", wantErr: true},
		{name: "role is case sensitive", email: "admin@tiffin.com", password: "admin123", role: "Admin", wantErr: true},
		{name: "user email is case insensitive", email: " User@Tiffin.com ", password: "user123", role: RoleUser, wantID: 2, wantRole: RoleUser},
		{name: "wrong password", email: "admin@tiffin.com", password: "admin124", role: RoleAdmin, wantErr: true},
		{name: "role mismatch", email: "user@tiffin.com", password: "user123", role: RoleAdmin, wantErr: true},
		{name: "unknown email", email: "who@tiffin.com", password: "admin123", wantErr: true},
		{name: "swapped passwords", email: "user@tiffin.com", password: "admin123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Login(tt.email, tt.password, tt.role)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.wantRole, p.Role)
		})
	}
}

func TestProfileRoles(t *testing.T) {
	user, err := Login("user@tiffin.com", "user123", RoleUser)
	require.NoError(t, err)
	assert.True(t, user.IsUser())
	assert.False(t, user.IsAdmin())
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "9876543210", user.Phone)

	var none *Profile
	assert.False(t, none.IsAdmin())
	assert.False(t, none.IsUser())
}

func TestLoginReturnsCopy(t *testing.T) {
	p, err := Login("admin@tiffin.com", "admin123", RoleAdmin)
	require.NoError(t, err)
	p.Name = "changed"

	again, err := Login("admin@tiffin.com", "admin123", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Admin User", again.Name)
}
