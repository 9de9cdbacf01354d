package usecase

import (
	"context"
	"errors"
	"log"

	"identity-platform/internal/authsvc/utils"
	"identity-platform/shared/xerrors"
)

// Login authenticates by username or email. Unknown identifier and wrong
// password collapse to the same error so callers cannot probe for accounts.
func (uc *UserUsecase) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	log.Printf("User login attempt: %s", identifier)

	user, err := uc.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, xerrors.ErrUserNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.codec.Issue(user.Username, user.ID, user.Roles, uc.tokenTTL)
	if err != nil {
		return nil, err
	}

	log.Printf("User logged in successfully: %s", user.Username)
	return uc.buildAuthResult(user, token, expiresAt), nil
}
