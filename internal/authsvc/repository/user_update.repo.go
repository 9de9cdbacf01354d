package repository

import (
	"context"

	"identity-platform/internal/authsvc/domain"
	"identity-platform/shared/xerrors"
)

// UpdateIdentity overwrites the mutable identity fields. Email keeps its
// unique constraint, so moving onto a taken address fails with ErrEmailTaken.
func (r *UserRepository) UpdateIdentity(ctx context.Context, userID int64, email, firstName, lastName string) (*domain.User, error) {
	saved, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, updated_at = now()
		WHERE id = $1
		RETURNING`+userColumns,
		userID, email, firstName, lastName,
	))
	if err != nil {
		return nil, xerrors.ParseUniqueViolation(err)
	}
	return saved, nil
}

func (r *UserRepository) SetLocked(ctx context.Context, userID int64, locked bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET account_locked = $2, updated_at = now() WHERE id = $1
	`, userID, locked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

// SetEnabled flips the enabled flag. Disabling is the DEACTIVATED transition;
// the caller is responsible for publishing the matching event.
func (r *UserRepository) SetEnabled(ctx context.Context, userID int64, enabled bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET enabled = $2, updated_at = now() WHERE id = $1
	`, userID, enabled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}
