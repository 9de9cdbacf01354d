package repository

import (
	"context"

	"identity-platform/internal/usersvc/domain"
	"identity-platform/shared/xerrors"
)

// CreateIfAbsent inserts a replicated profile, leaving any existing row
// untouched. Returns false when the row was already present, which is how
// duplicate USER_CREATED deliveries stay harmless.
func (r *ProfileRepository) CreateIfAbsent(ctx context.Context, p *domain.Profile) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_profiles (id, username, email, first_name, last_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Username, p.Email, p.FirstName, p.LastName,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateIdentity applies the stream-owned fields from a USER_UPDATED event.
func (r *ProfileRepository) UpdateIdentity(ctx context.Context, userID int64, username, email, firstName, lastName string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE user_profiles
		SET username = $2, email = $3, first_name = $4, last_name = $5, updated_at = NOW()
		WHERE id = $1`,
		userID, username, email, firstName, lastName,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

// Delete removes the row entirely. Only USER_DELETED events land here; the
// API deactivates instead.
func (r *ProfileRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}
