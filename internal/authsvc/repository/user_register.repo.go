package repository

import (
	"context"
	"errors"

	"identity-platform/internal/authsvc/domain"
	"identity-platform/shared/xerrors"

	"github.com/jackc/pgx/v5"
)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Roles,
		&u.Enabled,
		&u.AccountLocked,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userColumns = `
	id, username, email, password_hash, first_name, last_name,
	roles, enabled, account_locked, created_at, updated_at`

// CreateUser inserts the principal. Username and email uniqueness is the
// database's job: the unique constraints are the single-writer guarantee, so
// a concurrent duplicate registration loses here with ErrUsernameTaken or
// ErrEmailTaken.
func (r *UserRepository) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	saved, err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, roles, enabled, account_locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING`+userColumns,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Roles, u.Enabled, u.AccountLocked,
	))
	if err != nil {
		return nil, xerrors.ParseUniqueViolation(err)
	}
	return saved, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}
