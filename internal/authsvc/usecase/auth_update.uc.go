package usecase

import (
	"context"
	"log"

	"identity-platform/shared/eventbus"
)

type UpdateIdentityRequest struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateIdentity rewrites the mutable identity fields and announces the
// change to downstream projections.
func (uc *UserUsecase) UpdateIdentity(ctx context.Context, userID int64, req UpdateIdentityRequest) error {
	saved, err := uc.userRepo.UpdateIdentity(ctx, userID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	uc.publishUserEvent(ctx, eventbus.EventUserUpdated, saved)
	return nil
}

// Deactivate moves the principal to its terminal state and announces the
// deletion. The credential row stays behind (disabled) so the ID is never
// reused; downstream stores drop their projection.
func (uc *UserUsecase) Deactivate(ctx context.Context, userID int64) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.userRepo.SetEnabled(ctx, userID, false); err != nil {
		return err
	}
	log.Printf("User deactivated: %s", user.Username)

	uc.publishUserEvent(ctx, eventbus.EventUserDeleted, user)
	return nil
}

func (uc *UserUsecase) SetLocked(ctx context.Context, userID int64, locked bool) error {
	return uc.userRepo.SetLocked(ctx, userID, locked)
}
