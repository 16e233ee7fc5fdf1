package storage

import (
	"database/sql"
	"time"
)

// MediaKind classifies a stored bundle item.
type MediaKind string

const (
	// KindPhoto marks a photo item.
	KindPhoto MediaKind = "photo"
	// KindVideo marks a video item.
	KindVideo MediaKind = "video"
	// KindDocument marks a generic document item.
	KindDocument MediaKind = "document"
)

// User is a bot user created on first contact.
type User struct {
	ID         int64          `db:"id"`
	TelegramID int64          `db:"telegram_id"`
	Username   sql.NullString `db:"username"`
	FirstName  string         `db:"first_name"`
	LastName   sql.NullString `db:"last_name"`
	IsAdmin    bool           `db:"is_admin"`
	CreatedAt  time.Time      `db:"created_at"`
	LastActive time.Time      `db:"last_active"`
}

// Channel is a gating channel registration.
type Channel struct {
	ID       int64          `db:"id"`
	ChatID   int64          `db:"channel_id"`
	Username sql.NullString `db:"channel_username"`
	Title    string         `db:"channel_title"`
	AddedBy  int64          `db:"added_by"`
	AddedAt  time.Time      `db:"added_at"`
	IsActive bool           `db:"is_active"`
}

// WhitelistedUser joins a whitelist entry with the user it exempts.
type WhitelistedUser struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	AddedBy   int64          `db:"added_by"`
	AddedAt   time.Time      `db:"added_at"`
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
}

// Bundle is a redeemable unit identified by its code.
type Bundle struct {
	ID          int64          `db:"id"`
	Code        string         `db:"code"`
	AdminID     int64          `db:"admin_id"`
	CreatedAt   time.Time      `db:"created_at"`
	Description sql.NullString `db:"description"`
}

// BundleWithCount carries a bundle together with its item count.
type BundleWithCount struct {
	Bundle
	Items int `db:"items"`
}

// BundleItem is one stored media reference inside a bundle.
type BundleItem struct {
	ID       int64          `db:"id"`
	BundleID int64          `db:"bundle_id"`
	Kind     MediaKind      `db:"file_type"`
	FileID   string         `db:"telegram_file_id"`
	Name     sql.NullString `db:"file_name"`
	Size     sql.NullInt64  `db:"file_size"`
}

// ItemDraft is an item collected during an upload batch, not yet persisted.
// An empty Name or a zero Size is stored as NULL.
type ItemDraft struct {
	Kind   MediaKind
	FileID string
	Name   string
	Size   int64
}

// DisplayName returns the item name or a generic placeholder.
func (i BundleItem) DisplayName() string {
	if i.Name.Valid && i.Name.String != "" {
		return i.Name.String
	}
	return "file"
}
