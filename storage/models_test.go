package storage

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	named := BundleItem{Name: sql.NullString{String: "report.pdf", Valid: true}}
	assert.Equal(t, "report.pdf", named.DisplayName())

	assert.Equal(t, "file", BundleItem{}.DisplayName())
	empty := BundleItem{Name: sql.NullString{String: "", Valid: true}}
	assert.Equal(t, "file", empty.DisplayName())
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(errors.Wrap(unique, "insert bundle")))

	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}
