package storage

import (
	"github.com/jmoiron/sqlx"
)

// Repository provides data access for users, channels, whitelist entries,
// and file bundles. Every method is a single statement or a minimal
// transaction; no connection is held across conversation steps.
type Repository struct {
	db *sqlx.DB
}

// New wraps an open database handle.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}
