package storage

import (
	"context"

	"github.com/pkg/errors"
)

// AddToWhitelist inserts an exemption for a user. The insert is idempotent:
// the returned flag reports whether a new row was actually added.
func (r *Repository) AddToWhitelist(ctx context.Context, userID, addedBy int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO whitelist (user_id, added_by)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, addedBy,
	)
	if err != nil {
		return false, errors.Wrap(err, "storage.AddToWhitelist")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "storage.AddToWhitelist: rows affected")
	}
	return n > 0, nil
}

// RemoveFromWhitelist deletes an exemption and reports whether it existed.
func (r *Repository) RemoveFromWhitelist(ctx context.Context, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM whitelist WHERE user_id = $1`, userID)
	if err != nil {
		return false, errors.Wrap(err, "storage.RemoveFromWhitelist")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "storage.RemoveFromWhitelist: rows affected")
	}
	return n > 0, nil
}

// IsWhitelisted reports whether the user holds an exemption.
func (r *Repository) IsWhitelisted(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM whitelist WHERE user_id = $1)`, userID)
	return exists, errors.Wrap(err, "storage.IsWhitelisted")
}

// Whitelist lists exempted users with their user info, newest first.
func (r *Repository) Whitelist(ctx context.Context) ([]WhitelistedUser, error) {
	var list []WhitelistedUser
	err := r.db.SelectContext(ctx, &list, `
		SELECT w.id, w.user_id, w.added_by, w.added_at, u.username, u.first_name
		FROM whitelist w
		JOIN users u ON w.user_id = u.telegram_id
		ORDER BY w.added_at DESC`)
	return list, errors.Wrap(err, "storage.Whitelist")
}

// CountWhitelist returns the number of whitelist entries.
func (r *Repository) CountWhitelist(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM whitelist`)
	return n, errors.Wrap(err, "storage.CountWhitelist")
}
