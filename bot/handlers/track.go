package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"filegate/core/logger"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/storage"
)

// TrackUserMiddleware records every user on first contact and refreshes
// their last-activity timestamp on each event. Storage failures are logged
// and never block the update.
func TrackUserMiddleware(repo *storage.Repository) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.IsBot {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)

			if err := repo.UpsertUser(ctx, sender.ID, sender.FirstName, sender.Username, sender.LastName); err != nil {
				logger.Error(ctx, "service.users", "user.upsert_failed",
					slog.Int64("user_id", sender.ID),
					slog.String("err", err.Error()),
				)
				return next(c)
			}
			if err := repo.TouchUser(ctx, sender.ID); err != nil {
				logger.Error(ctx, "service.users", "user.touch_failed",
					slog.Int64("user_id", sender.ID),
					slog.String("err", err.Error()),
				)
			}
			return next(c)
		}
	}
}
