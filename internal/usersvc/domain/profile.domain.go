package domain

import "time"

// Profile is the replicated read model of an identity plus locally owned
// profile fields. Identity fields (username, email, names) are owned by the
// event stream; everything else is edited through the profile API.
type Profile struct {
	ID        int64
	Username  string
	Email     string
	FirstName string
	LastName  string

	PhoneNumber string
	Bio         string
	Address     string
	City        string
	Country     string
	PostalCode  string
	AvatarURL   string

	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfilePatch carries the API-editable fields. Nil means "leave unchanged".
// Identity fields are absent on purpose, the event stream owns them.
type ProfilePatch struct {
	PhoneNumber *string
	Bio         *string
	Address     *string
	City        *string
	Country     *string
	PostalCode  *string
	AvatarURL   *string
}

func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
