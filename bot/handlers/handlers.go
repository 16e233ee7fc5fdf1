// Package handlers wires the bot's commands, callbacks, and conversation
// states to the domain services.
package handlers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	tg "filegate/core/telegram"
	"filegate/core/telegram/commands"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/core/telegram/state"
	"filegate/service/access"
	"filegate/service/bundles"
	"filegate/service/stats"
	"filegate/storage"
)

// Conversation states driven by the FSM manager. Each user holds at most
// one of these at a time.
const (
	// StateAwaitingCode waits for a redemption code from a user.
	StateAwaitingCode state.State = "awaiting_code"
	// StateAwaitingFiles accumulates an admin's upload batch.
	StateAwaitingFiles state.State = "awaiting_files"
	// StateAwaitingChannel waits for a channel handle or link from an admin.
	StateAwaitingChannel state.State = "awaiting_channel"
	// StateAwaitingWhitelistUser waits for a user reference from an admin.
	StateAwaitingWhitelistUser state.State = "awaiting_whitelist_user"
)

// tempUploads is the session key holding the collected upload batch.
const tempUploads = "upload_items"

// doneCommand completes an upload batch while in StateAwaitingFiles.
const doneCommand = "/done"

// Store is the slice of the repository the handlers read and write.
// *storage.Repository satisfies it.
type Store interface {
	bundles.Store
	stats.Counter

	BundleByCode(ctx context.Context, code string) (*storage.Bundle, error)
	ItemsByBundle(ctx context.Context, bundleID int64) ([]storage.BundleItem, error)
	BundlesWithCounts(ctx context.Context) ([]storage.BundleWithCount, error)
	DeleteBundle(ctx context.Context, bundleID int64) error

	ActiveChannels(ctx context.Context) ([]storage.Channel, error)
	UpsertChannel(ctx context.Context, chatID int64, title, username string, addedBy int64) error
	ChannelByChatID(ctx context.Context, chatID int64) (*storage.Channel, error)
	DeleteChannel(ctx context.Context, chatID int64) error

	UserByTelegramID(ctx context.Context, telegramID int64) (*storage.User, error)
	UserByUsername(ctx context.Context, username string) (*storage.User, error)

	AddToWhitelist(ctx context.Context, userID, addedBy int64) (bool, error)
	RemoveFromWhitelist(ctx context.Context, userID int64) (bool, error)
	Whitelist(ctx context.Context) ([]storage.WhitelistedUser, error)
}

// Handlers binds every bot interaction to the services behind it.
type Handlers struct {
	repo    Store
	access  *access.Service
	states  state.Manager
	creator *bundles.Creator
}

// New assembles the handler set.
func New(repo Store, acc *access.Service, states state.Manager) *Handlers {
	return &Handlers{
		repo:    repo,
		access:  acc,
		states:  states,
		creator: bundles.NewCreator(repo),
	}
}

// Register wires commands, callbacks, and FSM state handlers into the
// registry and the state manager.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Open the main menu",
	})

	_ = reg.RegisterCallback(ui.KeySendCode, h.AskCode)
	_ = reg.RegisterCallback(ui.KeyCheckSub, h.CheckSubscription)
	_ = reg.RegisterCallback(ui.KeyCancel, h.Cancel)
	_ = reg.RegisterCallback(ui.KeyBackToMain, h.BackToMain)
	_ = reg.RegisterCallback(ui.KeyBackToAdmin, h.BackToAdmin)
	_ = reg.RegisterCallback(ui.KeyAboutBot, h.AboutBot)
	_ = reg.RegisterCallback(ui.KeyAboutCreator, h.AboutCreator)

	_ = reg.RegisterCallback(ui.KeyUploadFile, h.AskFiles)
	_ = reg.RegisterCallback(ui.KeyMyFiles, h.ListBundles)
	_ = reg.RegisterCallback(ui.KeyViewFile, h.ViewBundle)
	_ = reg.RegisterCallback(ui.KeyDownloadFile, h.DownloadBundle)
	_ = reg.RegisterCallback(ui.KeyDeleteFile, h.DeleteBundle)

	_ = reg.RegisterCallback(ui.KeyAddChannel, h.AskChannel)
	_ = reg.RegisterCallback(ui.KeyRemoveChannel, h.PickChannelToRemove)
	_ = reg.RegisterCallback(ui.KeyRemoveChannelID, h.RemoveChannel)
	_ = reg.RegisterCallback(ui.KeyListChannels, h.ListChannels)

	_ = reg.RegisterCallback(ui.KeyAddWhitelist, h.AskWhitelistUser)
	_ = reg.RegisterCallback(ui.KeyRemoveWhitelist, h.PickWhitelistUserToRemove)
	_ = reg.RegisterCallback(ui.KeyRemoveWLUser, h.RemoveWhitelistUser)

	_ = reg.RegisterCallback(ui.KeyStatistics, h.ShowStatistics)

	state.RegisterHandler(StateAwaitingCode, h.HandleCode)
	state.RegisterHandler(StateAwaitingFiles, h.HandleFiles)
	state.RegisterHandler(StateAwaitingChannel, h.HandleChannel)
	state.RegisterHandler(StateAwaitingWhitelistUser, h.HandleWhitelistUser)
}

// ctx returns the request-scoped context built by the logger middleware.
func (h *Handlers) ctx(c tele.Context) context.Context {
	return tghelpers.BuildContext(c)
}

// botSelf returns the bot's own user, needed to verify the bot's admin
// rights in a channel. Context.Bot exposes the API interface only.
func botSelf(c tele.Context) *tele.User {
	if b, ok := c.Bot().(*tele.Bot); ok {
		return b.Me
	}
	return nil
}

// requireAdmin rejects non-admin callers with an alert and reports
// whether the caller may proceed. Rejections cause no state change.
func (h *Handlers) requireAdmin(c tele.Context) bool {
	if h.access.IsAdmin(h.ctx(c), c.Sender().ID) {
		return true
	}
	_ = c.Respond(&tele.CallbackResponse{Text: ui.TextNoAccess, ShowAlert: true})
	return false
}

// RejectNotAdmin is the shared rejection handler for admin-only commands.
func RejectNotAdmin(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: ui.TextNoAccess, ShowAlert: true})
	}
	return c.Send(ui.TextNoAccess)
}
