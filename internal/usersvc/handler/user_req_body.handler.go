package handler

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"identity-platform/internal/usersvc/domain"
)

// updateProfileRequest is a partial update: absent fields stay untouched.
// Identity fields (username, email, names) are not accepted here; the event
// stream owns them.
type updateProfileRequest struct {
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	PostalCode  *string `json:"postalCode"`
	AvatarURL   *string `json:"avatarUrl"`
}

func (r updateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PhoneNumber, validation.Length(0, 20)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
		validation.Field(&r.Address, validation.Length(0, 255)),
		validation.Field(&r.City, validation.Length(0, 100)),
		validation.Field(&r.Country, validation.Length(0, 100)),
		validation.Field(&r.PostalCode, validation.Length(0, 20)),
		validation.Field(&r.AvatarURL, is.URL),
	)
}

func (r updateProfileRequest) toPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		PhoneNumber: r.PhoneNumber,
		Bio:         r.Bio,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		PostalCode:  r.PostalCode,
		AvatarURL:   r.AvatarURL,
	}
}

type profileResponse struct {
	UserID      int64      `json:"userId,string"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Bio         string     `json:"bio,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	PostalCode  string     `json:"postalCode,omitempty"`
	AvatarURL   string     `json:"avatarUrl,omitempty"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		UserID:      p.ID,
		Username:    p.Username,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		PhoneNumber: p.PhoneNumber,
		Bio:         p.Bio,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
		PostalCode:  p.PostalCode,
		AvatarURL:   p.AvatarURL,
		Active:      p.Active,
		LastLoginAt: p.LastLoginAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProfileResponses(profiles []*domain.Profile) []profileResponse {
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return out
}
