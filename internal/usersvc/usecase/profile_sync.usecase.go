package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"identity-platform/internal/usersvc/domain"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/xerrors"
)

// SyncFromEvent applies one user event to the replicated profile store.
// Delivery is at-least-once, so every branch tolerates replays:
// duplicate creates and deletes of absent rows are silent no-ops, and an
// update for a profile that never arrived is logged and skipped rather
// than recreated from partial data. A non-nil return means a store
// failure; the bus will log and drop, not redeliver.
func (uc *ProfileUsecase) SyncFromEvent(ctx context.Context, event eventbus.UserEvent) error {
	switch event.EventType {
	case eventbus.EventUserCreated:
		return uc.applyCreated(ctx, event)
	case eventbus.EventUserUpdated:
		return uc.applyUpdated(ctx, event)
	case eventbus.EventUserDeleted:
		return uc.applyDeleted(ctx, event)
	default:
		log.Printf("Ignoring unknown event type %q for user %d", event.EventType, event.UserID)
		return nil
	}
}

func (uc *ProfileUsecase) applyCreated(ctx context.Context, event eventbus.UserEvent) error {
	created, err := uc.profiles.CreateIfAbsent(ctx, &domain.Profile{
		ID:        event.UserID,
		Username:  event.Username,
		Email:     event.Email,
		FirstName: event.FirstName,
		LastName:  event.LastName,
		Active:    true,
	})
	if err != nil {
		return fmt.Errorf("creating profile %d: %w", event.UserID, err)
	}
	if !created {
		log.Printf("Profile %d already exists, skipping duplicate USER_CREATED", event.UserID)
		return nil
	}
	log.Printf("Profile created for user %d (%s)", event.UserID, event.Username)
	return nil
}

func (uc *ProfileUsecase) applyUpdated(ctx context.Context, event eventbus.UserEvent) error {
	err := uc.profiles.UpdateIdentity(ctx, event.UserID, event.Username, event.Email, event.FirstName, event.LastName)
	if errors.Is(err, xerrors.ErrUserNotFound) {
		log.Printf("USER_UPDATED for unknown profile %d, skipping", event.UserID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("updating profile %d: %w", event.UserID, err)
	}
	log.Printf("Profile updated for user %d", event.UserID)
	return nil
}

func (uc *ProfileUsecase) applyDeleted(ctx context.Context, event eventbus.UserEvent) error {
	err := uc.profiles.Delete(ctx, event.UserID)
	if errors.Is(err, xerrors.ErrUserNotFound) {
		log.Printf("USER_DELETED for unknown profile %d, skipping", event.UserID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting profile %d: %w", event.UserID, err)
	}
	log.Printf("Profile deleted for user %d", event.UserID)
	return nil
}
