package repository

import (
	"context"

	"identity-platform/internal/usersvc/domain"
	"identity-platform/shared/xerrors"
)

func (r *ProfileRepository) UpdateProfileFields(ctx context.Context, userID int64, patch domain.ProfilePatch) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_profiles
		SET phone_number = COALESCE($2, phone_number),
		    bio          = COALESCE($3, bio),
		    address      = COALESCE($4, address),
		    city         = COALESCE($5, city),
		    country      = COALESCE($6, country),
		    postal_code  = COALESCE($7, postal_code),
		    avatar_url   = COALESCE($8, avatar_url),
		    updated_at   = NOW()
		WHERE id = $1`,
		userID, patch.PhoneNumber, patch.Bio, patch.Address,
		patch.City, patch.Country, patch.PostalCode, patch.AvatarURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (r *ProfileRepository) Deactivate(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_profiles
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1`,
		userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (r *ProfileRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_profiles
		SET last_login_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}
