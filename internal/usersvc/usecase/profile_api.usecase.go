package usecase

import (
	"context"

	"identity-platform/internal/usersvc/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (uc *ProfileUsecase) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *ProfileUsecase) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return uc.profiles.GetByUsername(ctx, username)
}

func (uc *ProfileUsecase) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.profiles.List(ctx, limit, offset)
}

// Update patches the profile-owned fields only. Username, email and names
// are replicated from the event stream and cannot be edited here.
func (uc *ProfileUsecase) Update(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.Profile, error) {
	if err := uc.profiles.UpdateProfileFields(ctx, userID, patch); err != nil {
		return nil, err
	}
	return uc.profiles.GetByID(ctx, userID)
}

func (uc *ProfileUsecase) RecordLastLogin(ctx context.Context, userID int64) error {
	return uc.profiles.UpdateLastLogin(ctx, userID)
}

// Deactivate flips active off but keeps the row. Hard deletion only happens
// in response to USER_DELETED events.
func (uc *ProfileUsecase) Deactivate(ctx context.Context, userID int64) error {
	return uc.profiles.Deactivate(ctx, userID)
}
