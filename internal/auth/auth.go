// Package auth checks logins against the two built-in demo accounts. It is a
// routing gate for the admin and customer command sets, not a security
// boundary: there are no tokens and no server-side sessions.
package auth

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Profile is the logged-in account, without its password.
type Profile struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsAdmin reports whether p has the admin role.
func (p *Profile) IsAdmin() bool { return p != nil && p.Role == RoleAdmin }

// IsUser reports whether p has the user role.
func (p *Profile) IsUser() bool { return p != nil && p.Role == RoleUser }

type account struct {
	profile  Profile
	password string
}

var accounts = []account{
	{
		profile:  Profile{ID: 1, Name: "Admin User", Email: "admin@tiffin.com", Role: RoleAdmin},
		password: "admin123",
	},
	{
		profile: Profile{
			ID: 2, Name: "John Doe", Email: "user@tiffin.com", Role: RoleUser,
			Phone: "9876543210", Address: "123 Main St, City",
		},
		password: "user123",
	},
}

type hashedAccount struct {
	profile Profile
	hash    []byte
}

// hashedAccounts is built on first use so the bcrypt cost is paid only by
// processes that log in.
var hashedAccounts = sync.OnceValues(func() ([]hashedAccount, error) {
	out := make([]hashedAccount, len(accounts))
	for i, a := range accounts {
		h, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		out[i] = hashedAccount{profile: a.profile, hash: h}
	}
	return out, nil
})

// Login returns the profile whose email, password and role all match.
func Login(email, password, role string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.TrimSpace(role)

	list, err := hashedAccounts()
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		if a.profile.Email != email {
			continue
		}
		if a.profile.Role != role {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		p := a.profile
		return &p, nil
	}
	return nil, ErrInvalidCredentials
}
