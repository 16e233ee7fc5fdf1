package handlers

import (
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	tghelpers "filegate/core/telegram/helpers"
)

// Start greets the user and shows the role-appropriate main menu. Any
// in-progress conversation is discarded.
func (h *Handlers) Start(c tele.Context) error {
	userID := c.Sender().ID
	h.states.Clear(userID)

	isAdmin := h.access.IsAdmin(h.ctx(c), userID)
	text := ui.TextWelcome
	if isAdmin {
		text += ui.TextWelcomeAdmin
	}
	return tghelpers.SendMD(c, text, ui.MainMenu(isAdmin))
}

// BackToMain redraws the main menu and discards any in-progress conversation.
func (h *Handlers) BackToMain(c tele.Context) error {
	userID := c.Sender().ID
	h.states.Clear(userID)
	isAdmin := h.access.IsAdmin(h.ctx(c), userID)
	return tghelpers.EditOrSendMD(c, ui.TextMainMenu, ui.MainMenu(isAdmin))
}

// BackToAdmin redraws the admin panel.
func (h *Handlers) BackToAdmin(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	h.states.Clear(c.Sender().ID)
	return tghelpers.EditOrSendMD(c, ui.TextAdminPanel, ui.AdminMenu())
}

// AboutBot shows the bot description.
func (h *Handlers) AboutBot(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, ui.TextAbout, ui.BackToMain())
}

// AboutCreator shows the author blurb.
func (h *Handlers) AboutCreator(c tele.Context) error {
	return tghelpers.EditOrSendMD(c, ui.TextCreator, ui.BackToMain())
}

// Cancel aborts the current conversation and returns to the main menu.
func (h *Handlers) Cancel(c tele.Context) error {
	userID := c.Sender().ID
	h.states.Clear(userID)
	isAdmin := h.access.IsAdmin(h.ctx(c), userID)
	return tghelpers.EditOrSendMD(c, ui.TextCancelled, ui.MainMenu(isAdmin))
}
