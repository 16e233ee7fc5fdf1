package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

// UpsertUser records a user on first contact. Repeated calls for the same
// telegram id are silent no-ops.
func (r *Repository) UpsertUser(ctx context.Context, telegramID int64, firstName, username, lastName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''))
		ON CONFLICT (telegram_id) DO NOTHING`,
		telegramID, username, firstName, lastName,
	)
	return errors.Wrap(err, "storage.UpsertUser")
}

// TouchUser bumps the last-active timestamp.
func (r *Repository) TouchUser(ctx context.Context, telegramID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_active = now() WHERE telegram_id = $1`, telegramID)
	return errors.Wrap(err, "storage.TouchUser")
}

// UserByTelegramID returns the user with the given platform identity.
func (r *Repository) UserByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		`SELECT * FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage.UserByTelegramID")
	}
	return &u, nil
}

// UserByUsername returns the user with the given handle, with or without
// a leading "@".
func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimPrefix(username, "@")
	var u User
	err := r.db.GetContext(ctx, &u,
		`SELECT * FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage.UserByUsername")
	}
	return &u, nil
}

// UserIsAdmin reports the stored admin flag. Unknown users are not admins.
func (r *Repository) UserIsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	var isAdmin bool
	err := r.db.GetContext(ctx, &isAdmin,
		`SELECT is_admin FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "storage.UserIsAdmin")
	}
	return isAdmin, nil
}

// CountUsers returns the total number of known users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, errors.Wrap(err, "storage.CountUsers")
}
