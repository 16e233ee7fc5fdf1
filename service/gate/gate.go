// Package gate enforces channel-subscription gating on redemption attempts.
package gate

import (
	"context"
	"log/slog"
	"unicode/utf8"

	tele "gopkg.in/telebot.v4"

	"filegate/core/logger"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/service/codes"
	"filegate/storage"
)

// Action is the gating verdict for an inbound event.
type Action int

const (
	// ActionPass lets the event through to its handler.
	ActionPass Action = iota
	// ActionPrompt blocks the event and shows the subscription prompt.
	ActionPrompt
)

// Decision carries the verdict and, for prompts, exactly the channels the
// user is missing.
type Decision struct {
	Action  Action
	Missing []storage.Channel
}

// MissingFunc reports which of the given channels the user is not in.
type MissingFunc func(channels []storage.Channel) []storage.Channel

// Evaluate decides whether an event must be blocked pending subscription.
// Exempt users always pass. Only plain text of exactly the code length is
// treated as a redemption attempt; everything else passes untouched, as
// does any attempt when no channel is configured. The check is keyed on
// length alone; code-format validation happens later in the redemption
// handler.
func Evaluate(exempt bool, text string, isPlainText bool, channels []storage.Channel, missing MissingFunc) Decision {
	if exempt {
		return Decision{Action: ActionPass}
	}
	if !isPlainText || utf8.RuneCountInString(text) != codes.Length {
		return Decision{Action: ActionPass}
	}
	if len(channels) == 0 {
		return Decision{Action: ActionPass}
	}
	notSubscribed := missing(channels)
	if len(notSubscribed) == 0 {
		return Decision{Action: ActionPass}
	}
	return Decision{Action: ActionPrompt, Missing: notSubscribed}
}

// Options wires the middleware's collaborators.
type Options struct {
	// Exempt reports whether the user bypasses gating (admin or whitelisted).
	Exempt func(ctx context.Context, userID int64) bool
	// Active loads the current gating channel set.
	Active func(ctx context.Context) ([]storage.Channel, error)
	// Missing runs the membership check for the user.
	Missing func(ctx context.Context, c tele.Context, userID int64, channels []storage.Channel) []storage.Channel
	// Prompt presents the subscription prompt listing the missing channels.
	Prompt func(c tele.Context, missing []storage.Channel) error
}

// Middleware applies the gating policy to every inbound event before the
// routed handler runs. Blocked events never reach their handler.
func Middleware(opts Options) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}
			ctx := tghelpers.BuildContext(c)
			userID := sender.ID

			isPlainText := c.Callback() == nil && c.Message() != nil && c.Message().Text != ""
			text := ""
			if isPlainText {
				text = c.Message().Text
			}

			// Cheap checks first: shape, then channel set, then exemption
			// and the remote membership lookups.
			if !isPlainText || utf8.RuneCountInString(text) != codes.Length {
				return next(c)
			}
			if opts.Exempt(ctx, userID) {
				return next(c)
			}

			channels, err := opts.Active(ctx)
			if err != nil {
				logger.Error(ctx, "gate", "channels.load_failed",
					slog.Int64("user_id", userID),
					slog.String("err", err.Error()),
				)
				return next(c)
			}

			decision := Evaluate(false, text, true, channels, func(chs []storage.Channel) []storage.Channel {
				return opts.Missing(ctx, c, userID, chs)
			})
			if decision.Action == ActionPass {
				return next(c)
			}

			logger.Info(ctx, "gate", "gate.blocked",
				slog.Int64("user_id", userID),
				slog.Int("missing", len(decision.Missing)),
			)
			return opts.Prompt(c, decision.Missing)
		}
	}
}

