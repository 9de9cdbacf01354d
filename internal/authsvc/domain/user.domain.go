package domain

import (
	"time"

	"identity-platform/shared/xerrors"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the credential-store record for a principal. Username and email are
// unique across all users; the constraints live in the database so concurrent
// registrations resolve to exactly one winner.
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Roles         []string
	Enabled       bool
	AccountLocked bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanLogin reports whether the account state permits authentication.
func (u *User) CanLogin() error {
	if u.AccountLocked {
		return xerrors.ErrAccountLocked
	}
	if !u.Enabled {
		return xerrors.ErrAccountDisabled
	}
	return nil
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
