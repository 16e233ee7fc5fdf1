// Package stats produces read-only rollups over repository counts.
package stats

import (
	"context"

	"github.com/pkg/errors"
)

// Counter is the counting slice of the repository.
type Counter interface {
	CountUsers(ctx context.Context) (int64, error)
	CountBundles(ctx context.Context) (int64, error)
	CountItems(ctx context.Context) (int64, error)
	CountActiveChannels(ctx context.Context) (int64, error)
	CountWhitelist(ctx context.Context) (int64, error)
}

// Snapshot is a point-in-time rollup. It is always recomputed from the
// repository; this is an infrequent admin-triggered read.
type Snapshot struct {
	Users     int64
	Bundles   int64
	Items     int64
	Channels  int64
	Whitelist int64
}

// Collect gathers all counts.
func Collect(ctx context.Context, c Counter) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Users, err = c.CountUsers(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: users")
	}
	if s.Bundles, err = c.CountBundles(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: bundles")
	}
	if s.Items, err = c.CountItems(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: items")
	}
	if s.Channels, err = c.CountActiveChannels(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: channels")
	}
	if s.Whitelist, err = c.CountWhitelist(ctx); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: whitelist")
	}
	return s, nil
}
