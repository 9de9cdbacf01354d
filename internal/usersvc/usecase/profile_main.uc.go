package usecase

import (
	"context"

	"identity-platform/internal/usersvc/domain"
)

// ProfileStore is the persistence surface the profile usecase needs.
// *repository.ProfileRepository satisfies it; tests use in-memory fakes.
type ProfileStore interface {
	CreateIfAbsent(ctx context.Context, p *domain.Profile) (bool, error)
	UpdateIdentity(ctx context.Context, userID int64, username, email, firstName, lastName string) error
	Delete(ctx context.Context, userID int64) error
	UpdateProfileFields(ctx context.Context, userID int64, patch domain.ProfilePatch) error
	Deactivate(ctx context.Context, userID int64) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	GetByID(ctx context.Context, userID int64) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
}

type ProfileUsecase struct {
	profiles ProfileStore
}

func NewProfileUsecase(profiles ProfileStore) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles}
}
