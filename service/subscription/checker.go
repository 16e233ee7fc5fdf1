// Package subscription verifies channel membership and resolves channel
// identifiers against the messaging platform.
package subscription

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"

	"filegate/core/logger"
	"filegate/storage"
)

// ChatAPI is the slice of the bot client the checker needs. *tele.Bot
// satisfies it.
type ChatAPI interface {
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
	ChatByUsername(name string) (*tele.Chat, error)
}

// ErrNotResolvable is returned when a channel handle does not exist or the
// bot is not an administrator there. The bot can only verify membership of
// arbitrary users in channels it administers.
var ErrNotResolvable = errors.New("subscription: channel not found or bot is not admin")

// ChannelInfo describes a resolved channel.
type ChannelInfo struct {
	ChatID   int64
	Username string
	Title    string
}

// Missing returns the channels the user is not currently a member of.
// A role of left or kicked counts as not subscribed; any lookup failure is
// treated the same way. Gating fails closed, never open.
func Missing(ctx context.Context, api ChatAPI, userID int64, channels []storage.Channel) []storage.Channel {
	var missing []storage.Channel
	for _, ch := range channels {
		member, err := api.ChatMemberOf(tele.ChatID(ch.ChatID), &tele.User{ID: userID})
		if err != nil {
			logger.Error(ctx, "gate", "membership.lookup_failed",
				slog.Int64("user_id", userID),
				slog.Int64("channel_id", ch.ChatID),
				slog.String("err", err.Error()),
			)
			missing = append(missing, ch)
			continue
		}
		if member.Role == tele.Left || member.Role == tele.Kicked {
			missing = append(missing, ch)
		}
	}
	return missing
}

// Resolve turns a channel identifier (handle or invite URL) into channel
// info. It fails with ErrNotResolvable when the handle is unknown or the
// bot lacks admin rights in the channel.
func Resolve(ctx context.Context, api ChatAPI, self *tele.User, identifier string) (*ChannelInfo, error) {
	handle, ok := ExtractHandle(identifier)
	if !ok || self == nil {
		return nil, ErrNotResolvable
	}

	chat, err := api.ChatByUsername("@" + handle)
	if err != nil {
		logger.Warn(ctx, "service.channels", "channel.resolve_failed",
			slog.String("channel", handle),
			slog.String("err", err.Error()),
		)
		return nil, ErrNotResolvable
	}

	me, err := api.ChatMemberOf(chat, self)
	if err != nil {
		logger.Warn(ctx, "service.channels", "channel.self_lookup_failed",
			slog.String("channel", handle),
			slog.String("err", err.Error()),
		)
		return nil, ErrNotResolvable
	}
	if me.Role != tele.Administrator && me.Role != tele.Creator {
		return nil, ErrNotResolvable
	}

	return &ChannelInfo{
		ChatID:   chat.ID,
		Username: chat.Username,
		Title:    chat.Title,
	}, nil
}
