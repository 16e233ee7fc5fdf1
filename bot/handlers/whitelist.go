package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	"filegate/core/telegram/callbacks"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/storage"
)

// AskWhitelistUser starts the whitelist conversation.
func (h *Handlers) AskWhitelistUser(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.SetState(c.Sender().ID, StateAwaitingWhitelistUser)
	return tghelpers.EditOrSendMD(c, ui.TextAskWhitelistUser, ui.Cancel())
}

// HandleWhitelistUser consumes a user reference (handle or numeric id)
// while the whitelist conversation is open. Only users already known to
// the bot can be whitelisted; an unknown reference keeps the conversation
// open.
func (h *Handlers) HandleWhitelistUser(c tele.Context) error {
	ctx := h.ctx(c)
	adminID := c.Sender().ID
	ref := strings.TrimSpace(c.Text())

	user, err := h.lookupUser(c, ref)
	if errors.Is(err, storage.ErrNotFound) {
		return tghelpers.SendMD(c, ui.TextUserNotKnown, ui.Cancel())
	}
	if err != nil {
		return err
	}

	inserted, err := h.repo.AddToWhitelist(ctx, user.TelegramID, adminID)
	if err != nil {
		return err
	}
	h.states.Clear(adminID)
	if !inserted {
		return tghelpers.SendMD(c, ui.TextWhitelistConflict, ui.AdminMenu())
	}

	logger.Info(ctx, "service.whitelist", "whitelist.added",
		slog.Int64("user_id", user.TelegramID),
	)
	return tghelpers.SendMD(c, ui.WhitelistAdded(displayUser(user)), ui.AdminMenu())
}

// PickWhitelistUserToRemove lists whitelist entries as removal buttons.
func (h *Handlers) PickWhitelistUserToRemove(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	entries, err := h.repo.Whitelist(h.ctx(c))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return tghelpers.EditOrSendMD(c, ui.TextWhitelistEmpty, ui.BackToAdmin())
	}
	return tghelpers.EditOrSendMD(c, ui.TextPickWLUserRemove, ui.WhitelistRemoveList(entries))
}

// RemoveWhitelistUser removes the exemption named in the callback payload.
func (h *Handlers) RemoveWhitelistUser(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	ctx := h.ctx(c)
	userID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}

	removed, err := h.repo.RemoveFromWhitelist(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return tghelpers.EditOrSendMD(c, ui.TextWhitelistEmpty, ui.BackToAdmin())
	}

	logger.Info(ctx, "service.whitelist", "whitelist.removed",
		slog.Int64("user_id", userID),
	)
	display := strconv.FormatInt(userID, 10)
	if user, err := h.repo.UserByTelegramID(ctx, userID); err == nil {
		display = displayUser(user)
	}
	return tghelpers.EditOrSendMD(c, ui.WhitelistRemoved(display), ui.BackToAdmin())
}

// lookupUser resolves a whitelist reference: @handle or numeric Telegram id.
func (h *Handlers) lookupUser(c tele.Context, ref string) (*storage.User, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return h.repo.UserByTelegramID(h.ctx(c), id)
	}
	return h.repo.UserByUsername(h.ctx(c), ref)
}

// displayUser picks the friendliest available user reference.
func displayUser(u *storage.User) string {
	if u.Username.Valid && u.Username.String != "" {
		return "@" + u.Username.String
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return strconv.FormatInt(u.TelegramID, 10)
}
