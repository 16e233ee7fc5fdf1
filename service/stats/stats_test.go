package stats

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	users, bundles, items, channels, whitelist int64
	failOn                                     string
}

var errCount = errors.New("count failed")

func (f *fakeCounter) count(name string, v int64) (int64, error) {
	if f.failOn == name {
		return 0, errCount
	}
	return v, nil
}

func (f *fakeCounter) CountUsers(context.Context) (int64, error) {
	return f.count("users", f.users)
}

func (f *fakeCounter) CountBundles(context.Context) (int64, error) {
	return f.count("bundles", f.bundles)
}

func (f *fakeCounter) CountItems(context.Context) (int64, error) {
	return f.count("items", f.items)
}

func (f *fakeCounter) CountActiveChannels(context.Context) (int64, error) {
	return f.count("channels", f.channels)
}

func (f *fakeCounter) CountWhitelist(context.Context) (int64, error) {
	return f.count("whitelist", f.whitelist)
}

func TestCollect(t *testing.T) {
	c := &fakeCounter{users: 120, bundles: 7, items: 31, channels: 2, whitelist: 4}
	got, err := Collect(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Users: 120, Bundles: 7, Items: 31, Channels: 2, Whitelist: 4}, got)
}

func TestCollectPropagatesFirstFailure(t *testing.T) {
	for _, failOn := range []string{"users", "bundles", "items", "channels", "whitelist"} {
		c := &fakeCounter{failOn: failOn}
		_, err := Collect(context.Background(), c)
		assert.ErrorIs(t, err, errCount, failOn)
	}
}
