package access

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeAccessStore struct {
	admins      map[int64]bool
	whitelisted map[int64]bool
	adminErr    error
	wlErr       error
}

func (f *fakeAccessStore) UserIsAdmin(_ context.Context, id int64) (bool, error) {
	if f.adminErr != nil {
		return false, f.adminErr
	}
	return f.admins[id], nil
}

func (f *fakeAccessStore) IsWhitelisted(_ context.Context, id int64) (bool, error) {
	if f.wlErr != nil {
		return false, f.wlErr
	}
	return f.whitelisted[id], nil
}

func TestIsAdminStaticSet(t *testing.T) {
	s := New([]int64{10, 20}, &fakeAccessStore{})
	ctx := context.Background()

	assert.True(t, s.IsAdmin(ctx, 10))
	assert.True(t, s.IsAdmin(ctx, 20))
	assert.False(t, s.IsAdmin(ctx, 30))
}

func TestIsAdminStoredFlag(t *testing.T) {
	s := New(nil, &fakeAccessStore{admins: map[int64]bool{30: true}})
	assert.True(t, s.IsAdmin(context.Background(), 30))
	assert.False(t, s.IsAdmin(context.Background(), 31))
}

func TestIsAdminStoreFailureKeepsStaticAdmins(t *testing.T) {
	s := New([]int64{10}, &fakeAccessStore{adminErr: errors.New("db down")})
	ctx := context.Background()

	assert.True(t, s.IsAdmin(ctx, 10))
	assert.False(t, s.IsAdmin(ctx, 30))
}

func TestIsExempt(t *testing.T) {
	s := New([]int64{10}, &fakeAccessStore{
		admins:      map[int64]bool{20: true},
		whitelisted: map[int64]bool{30: true},
	})
	ctx := context.Background()

	assert.True(t, s.IsExempt(ctx, 10), "static admin")
	assert.True(t, s.IsExempt(ctx, 20), "stored admin")
	assert.True(t, s.IsExempt(ctx, 30), "whitelisted")
	assert.False(t, s.IsExempt(ctx, 40))
}

func TestIsExemptWhitelistFailureFailsClosed(t *testing.T) {
	s := New(nil, &fakeAccessStore{wlErr: errors.New("db down")})
	assert.False(t, s.IsExempt(context.Background(), 30))
}

func TestAdminChecker(t *testing.T) {
	s := New([]int64{10}, &fakeAccessStore{})
	check := s.AdminChecker()
	assert.True(t, check(10))
	assert.False(t, check(11))
}
