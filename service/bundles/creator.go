// Package bundles turns collected upload batches into stored file bundles.
package bundles

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"filegate/core/logger"
	"filegate/service/codes"
	"filegate/storage"
)

// ErrEmptyBatch is returned when upload completion arrives with no
// collected files; no bundle is created in that case.
var ErrEmptyBatch = errors.New("bundles: no files collected")

// maxCodeAttempts bounds regeneration on code collisions. With a 36^8
// space collisions are vanishingly rare; hitting the bound means
// something other than luck is wrong.
const maxCodeAttempts = 5

// Store is the slice of the repository the creator writes through.
type Store interface {
	CreateBundleWithItems(ctx context.Context, code string, adminID int64, description string, items []storage.ItemDraft) (int64, error)
}

// Creator persists upload batches under freshly generated codes.
type Creator struct {
	store    Store
	generate func() string
}

// NewCreator builds a Creator using the default code generator.
func NewCreator(store Store) *Creator {
	return &Creator{store: store, generate: codes.Generate}
}

// Create stores the batch as a new bundle and returns its code and id.
// Code collisions are an internal retry condition: the code is regenerated
// and creation retried, never surfaced to the admin.
func (c *Creator) Create(ctx context.Context, adminID int64, description string, items []storage.ItemDraft) (string, int64, error) {
	if len(items) == 0 {
		return "", 0, ErrEmptyBatch
	}

	var lastErr error
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := c.generate()
		bundleID, err := c.store.CreateBundleWithItems(ctx, code, adminID, description, items)
		if err == nil {
			logger.Info(ctx, "service.bundles", "bundle.created",
				slog.String("code", code),
				slog.Int64("bundle_id", bundleID),
				slog.Int("items", len(items)),
				slog.Int64("user_id", adminID),
			)
			return code, bundleID, nil
		}
		if !errors.Is(err, storage.ErrCodeTaken) {
			return "", 0, err
		}
		lastErr = err
		logger.Warn(ctx, "service.bundles", "bundle.code_collision",
			slog.String("code", code),
			slog.Int("attempts", attempt),
		)
	}
	return "", 0, errors.Wrap(lastErr, "bundles: code generation exhausted")
}
