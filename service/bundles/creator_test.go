package bundles

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filegate/storage"
)

type fakeStore struct {
	taken   map[string]struct{}
	fail    error
	created []string
	nextID  int64
}

func (f *fakeStore) CreateBundleWithItems(_ context.Context, code string, _ int64, _ string, _ []storage.ItemDraft) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	if _, ok := f.taken[code]; ok {
		return 0, storage.ErrCodeTaken
	}
	f.created = append(f.created, code)
	f.nextID++
	return f.nextID, nil
}

func drafts(n int) []storage.ItemDraft {
	items := make([]storage.ItemDraft, n)
	for i := range items {
		items[i] = storage.ItemDraft{Kind: storage.KindDocument, FileID: "file"}
	}
	return items
}

func TestCreateRejectsEmptyBatch(t *testing.T) {
	c := NewCreator(&fakeStore{})
	_, _, err := c.Create(context.Background(), 1, "", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestCreateReturnsGeneratedCode(t *testing.T) {
	store := &fakeStore{}
	c := NewCreator(store)

	code, id, err := c.Create(context.Background(), 1, "weekly drop", drafts(3))
	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, []string{code}, store.created)
}

func TestCreateRetriesOnCodeCollision(t *testing.T) {
	codes := []string{"AAAAAAAA", "BBBBBBBB", "CCCCCCCC"}
	store := &fakeStore{taken: map[string]struct{}{
		"AAAAAAAA": {},
		"BBBBBBBB": {},
	}}
	var n int
	c := &Creator{store: store, generate: func() string {
		code := codes[n]
		n++
		return code
	}}

	code, _, err := c.Create(context.Background(), 1, "", drafts(1))
	require.NoError(t, err)
	assert.Equal(t, "CCCCCCCC", code)
	assert.Equal(t, 3, n)
}

func TestCreateGivesUpAfterMaxAttempts(t *testing.T) {
	store := &fakeStore{taken: map[string]struct{}{"AAAAAAAA": {}}}
	c := &Creator{store: store, generate: func() string { return "AAAAAAAA" }}

	_, _, err := c.Create(context.Background(), 1, "", drafts(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCodeTaken)
}

func TestCreatePropagatesStorageErrors(t *testing.T) {
	boom := errors.New("connection reset")
	c := NewCreator(&fakeStore{fail: boom})

	_, _, err := c.Create(context.Background(), 1, "", drafts(1))
	assert.ErrorIs(t, err, boom)
}
