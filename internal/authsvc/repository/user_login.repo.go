package repository

import (
	"context"

	"identity-platform/internal/authsvc/domain"
)

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT`+userColumns+`
		FROM users
		WHERE username = $1
		LIMIT 1
	`, username))
}

// GetByUsernameOrEmail resolves the login identifier against either column.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT`+userColumns+`
		FROM users
		WHERE username = $1 OR email = $1
		LIMIT 1
	`, identifier))
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		SELECT`+userColumns+`
		FROM users
		WHERE id = $1
		LIMIT 1
	`, userID))
}
