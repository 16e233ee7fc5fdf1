package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// UpsertChannel registers a gating channel, replacing the title, handle,
// and registering admin when the channel id is already known. Re-adding a
// channel reactivates it.
func (r *Repository) UpsertChannel(ctx context.Context, chatID int64, title, username string, addedBy int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO channels (channel_id, channel_username, channel_title, added_by)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		ON CONFLICT (channel_id) DO UPDATE SET
			channel_username = EXCLUDED.channel_username,
			channel_title    = EXCLUDED.channel_title,
			added_by         = EXCLUDED.added_by,
			is_active        = TRUE`,
		chatID, username, title, addedBy,
	)
	return errors.Wrap(err, "storage.UpsertChannel")
}

// DeleteChannel removes a channel registration.
func (r *Repository) DeleteChannel(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM channels WHERE channel_id = $1`, chatID)
	return errors.Wrap(err, "storage.DeleteChannel")
}

// ActiveChannels lists channels eligible for gating, newest first.
func (r *Repository) ActiveChannels(ctx context.Context) ([]Channel, error) {
	var chs []Channel
	err := r.db.SelectContext(ctx, &chs,
		`SELECT * FROM channels WHERE is_active ORDER BY added_at DESC`)
	return chs, errors.Wrap(err, "storage.ActiveChannels")
}

// ChannelByChatID returns the registration record for a platform channel id.
func (r *Repository) ChannelByChatID(ctx context.Context, chatID int64) (*Channel, error) {
	var ch Channel
	err := r.db.GetContext(ctx, &ch,
		`SELECT * FROM channels WHERE channel_id = $1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage.ChannelByChatID")
	}
	return &ch, nil
}

// CountActiveChannels returns the number of channels eligible for gating.
func (r *Repository) CountActiveChannels(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM channels WHERE is_active`)
	return n, errors.Wrap(err, "storage.CountActiveChannels")
}
