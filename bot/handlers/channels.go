package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	"filegate/core/telegram/callbacks"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/service/subscription"
)

// AskChannel starts the channel registration conversation.
func (h *Handlers) AskChannel(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.SetState(c.Sender().ID, StateAwaitingChannel)
	return tghelpers.EditOrSendMD(c, ui.TextAskChannel, ui.Cancel())
}

// HandleChannel consumes a channel handle or link while registration is
// open. Failures keep the conversation open for another attempt.
func (h *Handlers) HandleChannel(c tele.Context) error {
	ctx := h.ctx(c)
	userID := c.Sender().ID
	text := c.Text()

	if _, ok := subscription.ExtractHandle(text); !ok {
		return tghelpers.SendMD(c, ui.TextBadChannelFormat, ui.Cancel())
	}

	info, err := subscription.Resolve(ctx, c.Bot(), botSelf(c), text)
	if err != nil {
		return tghelpers.SendMD(c, ui.TextChannelNotFound, ui.Cancel())
	}

	if err := h.repo.UpsertChannel(ctx, info.ChatID, info.Title, info.Username, userID); err != nil {
		return err
	}
	h.states.Clear(userID)

	logger.Info(ctx, "service.channels", "channel.added",
		slog.Int64("channel_id", info.ChatID),
		slog.String("channel", info.Username),
	)
	return tghelpers.SendMD(c, ui.ChannelAdded(info.Title, info.Username), ui.AdminMenu())
}

// PickChannelToRemove lists the active channels as removal buttons.
func (h *Handlers) PickChannelToRemove(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	channels, err := h.repo.ActiveChannels(h.ctx(c))
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return tghelpers.EditOrSendMD(c, ui.TextNoChannels, ui.BackToAdmin())
	}
	return tghelpers.EditOrSendMD(c, ui.TextPickChannelToRemove, ui.ChannelRemoveList(channels))
}

// RemoveChannel deletes the channel named in the callback payload.
func (h *Handlers) RemoveChannel(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	ctx := h.ctx(c)
	chatID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}

	ch, err := h.repo.ChannelByChatID(ctx, chatID)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteChannel(ctx, chatID); err != nil {
		return err
	}

	logger.Info(ctx, "service.channels", "channel.removed",
		slog.Int64("channel_id", chatID),
	)
	return tghelpers.EditOrSendMD(c, ui.ChannelRemoved(ch.Title), ui.BackToAdmin())
}

// ListChannels prints the active gating channels.
func (h *Handlers) ListChannels(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	channels, err := h.repo.ActiveChannels(h.ctx(c))
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return tghelpers.EditOrSendMD(c, ui.TextNoChannels, ui.BackToAdmin())
	}
	return tghelpers.EditOrSendMD(c, ui.ChannelListing(channels), ui.BackToAdmin())
}
