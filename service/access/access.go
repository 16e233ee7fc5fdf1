// Package access answers admin and gating-exemption questions from a
// single place: the static configured admin set, the stored per-user
// admin flag, and the whitelist.
package access

import (
	"context"
	"log/slog"

	"filegate/core/logger"
)

// Store is the subset of the repository the access service reads.
type Store interface {
	UserIsAdmin(ctx context.Context, telegramID int64) (bool, error)
	IsWhitelisted(ctx context.Context, telegramID int64) (bool, error)
}

// Service combines the two admin sources and the whitelist behind one API.
type Service struct {
	static map[int64]struct{}
	store  Store
}

// New builds a Service from the static admin id list and the repository.
func New(staticIDs []int64, store Store) *Service {
	static := make(map[int64]struct{}, len(staticIDs))
	for _, id := range staticIDs {
		static[id] = struct{}{}
	}
	return &Service{static: static, store: store}
}

// IsAdmin reports whether the identity is an admin via either source.
// Store failures only disable the stored flag, never the static set.
func (s *Service) IsAdmin(ctx context.Context, userID int64) bool {
	if _, ok := s.static[userID]; ok {
		return true
	}
	if s.store == nil {
		return false
	}
	isAdmin, err := s.store.UserIsAdmin(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "service.users", "admin.lookup_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}
	return isAdmin
}

// IsExempt reports whether gating never applies to the identity: admins
// and whitelisted users bypass every subscription check.
func (s *Service) IsExempt(ctx context.Context, userID int64) bool {
	if s.IsAdmin(ctx, userID) {
		return true
	}
	if s.store == nil {
		return false
	}
	whitelisted, err := s.store.IsWhitelisted(ctx, userID)
	if err != nil {
		logger.Warn(ctx, "service.whitelist", "exempt.lookup_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}
	return whitelisted
}

// AdminChecker adapts IsAdmin for middleware that expects a bare func.
func (s *Service) AdminChecker() func(userID int64) bool {
	return func(userID int64) bool {
		return s.IsAdmin(context.Background(), userID)
	}
}
