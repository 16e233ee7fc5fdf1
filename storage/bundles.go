package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// CreateBundleWithItems inserts a bundle and all of its items in one
// transaction, in collection order. A bundle never exists without items:
// empty batches are rejected before any write. A code collision with an
// existing bundle surfaces as ErrCodeTaken so the caller can regenerate.
func (r *Repository) CreateBundleWithItems(ctx context.Context, code string, adminID int64, description string, items []ItemDraft) (int64, error) {
	if len(items) == 0 {
		return 0, errors.New("storage.CreateBundleWithItems: no items")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "storage.CreateBundleWithItems: begin")
	}
	defer func() { _ = tx.Rollback() }()

	var bundleID int64
	err = tx.GetContext(ctx, &bundleID, `
		INSERT INTO bundles (code, admin_id, description)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id`,
		code, adminID, description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrCodeTaken
		}
		return 0, errors.Wrap(err, "storage.CreateBundleWithItems: insert bundle")
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bundle_items (bundle_id, file_type, telegram_file_id, file_name, file_size)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, 0))`,
			bundleID, item.Kind, item.FileID, item.Name, item.Size,
		)
		if err != nil {
			return 0, errors.Wrap(err, "storage.CreateBundleWithItems: insert item")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "storage.CreateBundleWithItems: commit")
	}
	return bundleID, nil
}

// BundleByCode returns the bundle identified by a redemption code.
func (r *Repository) BundleByCode(ctx context.Context, code string) (*Bundle, error) {
	var b Bundle
	err := r.db.GetContext(ctx, &b,
		`SELECT * FROM bundles WHERE code = $1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "storage.BundleByCode")
	}
	return &b, nil
}

// ItemsByBundle lists a bundle's items in insertion order. The explicit
// ORDER BY on the monotonic id keeps delivery order stable.
func (r *Repository) ItemsByBundle(ctx context.Context, bundleID int64) ([]BundleItem, error) {
	var items []BundleItem
	err := r.db.SelectContext(ctx, &items,
		`SELECT * FROM bundle_items WHERE bundle_id = $1 ORDER BY id`, bundleID)
	return items, errors.Wrap(err, "storage.ItemsByBundle")
}

// BundlesWithCounts lists all bundles with their item counts, newest first.
func (r *Repository) BundlesWithCounts(ctx context.Context) ([]BundleWithCount, error) {
	var list []BundleWithCount
	err := r.db.SelectContext(ctx, &list, `
		SELECT b.*, COUNT(i.id) AS items
		FROM bundles b
		LEFT JOIN bundle_items i ON b.id = i.bundle_id
		GROUP BY b.id
		ORDER BY b.created_at DESC`)
	return list, errors.Wrap(err, "storage.BundlesWithCounts")
}

// DeleteBundle removes a bundle; its items go with it via cascade.
func (r *Repository) DeleteBundle(ctx context.Context, bundleID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bundles WHERE id = $1`, bundleID)
	return errors.Wrap(err, "storage.DeleteBundle")
}

// CountBundles returns the total number of bundles.
func (r *Repository) CountBundles(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bundles`)
	return n, errors.Wrap(err, "storage.CountBundles")
}

// CountItems returns the total number of stored items.
func (r *Repository) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bundle_items`)
	return n, errors.Wrap(err, "storage.CountItems")
}
