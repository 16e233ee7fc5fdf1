package handlers

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/service/codes"
	"filegate/service/subscription"
	"filegate/storage"
)

// AskCode starts the redemption conversation.
func (h *Handlers) AskCode(c tele.Context) error {
	h.states.SetState(c.Sender().ID, StateAwaitingCode)
	return tghelpers.EditOrSendMD(c, ui.TextAskCode, ui.Cancel())
}

// HandleCode consumes a message while the user is expected to send a code.
// A malformed code keeps the conversation open; an unknown or empty code
// ends it.
func (h *Handlers) HandleCode(c tele.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Text()))
	if !codes.Validate(code) {
		return tghelpers.SendMD(c, ui.TextBadCodeFormat, ui.Cancel())
	}
	return h.redeem(c, code)
}

// HandleLooseText handles text arriving outside any conversation. Anything
// shaped like a code is treated as a redemption attempt; the rest gets the
// main menu.
func (h *Handlers) HandleLooseText(c tele.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Text()))
	if codes.Validate(code) {
		return h.redeem(c, code)
	}
	isAdmin := h.access.IsAdmin(h.ctx(c), c.Sender().ID)
	return tghelpers.SendMD(c, ui.TextMainMenu, ui.MainMenu(isAdmin))
}

// redeem looks the code up and delivers its bundle. The conversation, if
// any, ends here regardless of the outcome.
func (h *Handlers) redeem(c tele.Context, code string) error {
	ctx := h.ctx(c)
	userID := c.Sender().ID
	h.states.Clear(userID)

	bundle, err := h.repo.BundleByCode(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		isAdmin := h.access.IsAdmin(ctx, userID)
		return tghelpers.SendMD(c, ui.TextCodeNotFound, ui.MainMenu(isAdmin))
	}
	if err != nil {
		return err
	}

	items, err := h.repo.ItemsByBundle(ctx, bundle.ID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		isAdmin := h.access.IsAdmin(ctx, userID)
		return tghelpers.SendMD(c, ui.TextBundleEmpty, ui.MainMenu(isAdmin))
	}

	logger.Info(ctx, "gate", "bundle.redeemed",
		slog.String("code", code),
		slog.Int64("bundle_id", bundle.ID),
		slog.Int("items", len(items)),
	)
	return h.deliver(c, items)
}

// CheckSubscription re-evaluates the user's memberships after they claim
// to have joined the required channels.
func (h *Handlers) CheckSubscription(c tele.Context) error {
	ctx := h.ctx(c)
	userID := c.Sender().ID

	channels, err := h.repo.ActiveChannels(ctx)
	if err != nil {
		return err
	}
	missing := subscription.Missing(ctx, c.Bot(), userID, channels)
	if len(missing) > 0 {
		return tghelpers.EditOrSendMD(c, ui.TextStillMissing, ui.SubscriptionPrompt(missing))
	}

	h.states.SetState(userID, StateAwaitingCode)
	return tghelpers.EditOrSendMD(c, ui.TextSubscribed, ui.Cancel())
}
