package usecase

import (
	"context"
	"log"
	"time"

	"identity-platform/internal/authsvc/domain"
	"identity-platform/internal/authsvc/utils"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/xerrors"
)

type RegisterRequest struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the principal and returns a fresh token. Ordering is
// fixed: persist, then issue, then publish. The event publish is best-effort;
// registration never fails because the bus is down.
func (uc *UserUsecase) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	log.Printf("Registering new user: %s", req.Username)

	// Username is checked before email so the first conflicting field wins
	// the 409 message. The database constraints still back this up under
	// concurrent registration.
	if taken, err := uc.userRepo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, xerrors.ErrUsernameTaken
	}
	if taken, err := uc.userRepo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, xerrors.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uc.sf.Generate(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Roles:        []string{domain.RoleUser},
		Enabled:      true,
	}

	saved, err := uc.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("User registered successfully: %s", saved.Username)

	token, expiresAt, err := uc.codec.Issue(saved.Username, saved.ID, saved.Roles, uc.tokenTTL)
	if err != nil {
		return nil, err
	}

	uc.publishUserEvent(ctx, eventbus.EventUserCreated, saved)

	return uc.buildAuthResult(saved, token, expiresAt), nil
}

// publishUserEvent is fire-and-forget: a bus outage must not roll back the
// state change that triggered the event.
func (uc *UserUsecase) publishUserEvent(ctx context.Context, eventType string, u *domain.User) {
	event := eventbus.UserEvent{
		EventType: eventType,
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := uc.producer.Publish(ctx, eventbus.TopicUserEvents, event); err != nil {
		log.Printf("Failed to publish %s event for user %s: %v", eventType, u.Username, err)
	}
}
