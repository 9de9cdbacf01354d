package usecase

import (
	"context"
	"time"

	"identity-platform/internal/authsvc/domain"
	"identity-platform/shared/eventbus"
	"identity-platform/shared/id"
	"identity-platform/shared/jwtutil"
)

// UserStore is the credential store the usecase runs against. The pgx
// repository implements it in production; tests swap in a fake.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	UpdateIdentity(ctx context.Context, userID int64, email, firstName, lastName string) (*domain.User, error)
	SetLocked(ctx context.Context, userID int64, locked bool) error
	SetEnabled(ctx context.Context, userID int64, enabled bool) error
}

type UserUsecase struct {
	userRepo UserStore
	sf       *id.Snowflake
	codec    *jwtutil.Codec
	producer eventbus.Publisher
	tokenTTL time.Duration
}

func NewUserUsecase(
	userRepo UserStore,
	sf *id.Snowflake,
	codec *jwtutil.Codec,
	producer eventbus.Publisher,
	tokenTTL time.Duration,
) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		sf:       sf,
		codec:    codec,
		producer: producer,
		tokenTTL: tokenTTL,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // millis until expiry
	UserID      int64
	Username    string
	FirstName   string
	LastName    string
	Roles       []string
}

func (uc *UserUsecase) buildAuthResult(u *domain.User, token string, expiresAt time.Time) *AuthResult {
	return &AuthResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   time.Until(expiresAt).Milliseconds(),
		UserID:      u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Roles:       u.Roles,
	}
}
