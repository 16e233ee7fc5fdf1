// Package ui builds the bot's inline keyboards and message texts.
package ui

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"filegate/core/telegram/keyboard"
	"filegate/storage"
)

const maxButtonTitle = 30

// MainMenu returns the admin or user main menu depending on role.
func MainMenu(isAdmin bool) *tele.ReplyMarkup {
	if isAdmin {
		return AdminMenu()
	}
	return UserMenu()
}

// UserMenu is the main menu for regular users.
func UserMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔑 Redeem a code", Unique: KeySendCode},
		{Text: "ℹ️ About the bot", Unique: KeyAboutBot},
		{Text: "👨‍💻 Author", Unique: KeyAboutCreator},
	})
}

// AdminMenu is the main menu for admins.
func AdminMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "📤 Upload files", Unique: KeyUploadFile},
			{Text: "📂 My bundles", Unique: KeyMyFiles},
		},
		[]keyboard.InlineBtn{
			{Text: "➕ Add channel", Unique: KeyAddChannel},
			{Text: "➖ Remove channel", Unique: KeyRemoveChannel},
		},
		[]keyboard.InlineBtn{
			{Text: "📋 Channels", Unique: KeyListChannels},
			{Text: "👤 Add to whitelist", Unique: KeyAddWhitelist},
		},
		[]keyboard.InlineBtn{
			{Text: "❌ Remove from whitelist", Unique: KeyRemoveWhitelist},
			{Text: "📊 Statistics", Unique: KeyStatistics},
		},
		[]keyboard.InlineBtn{
			{Text: "🏠 Main menu", Unique: KeyBackToMain},
			{Text: "ℹ️ About the bot", Unique: KeyAboutBot},
		},
	)
}

// BackToMain is a single back-to-main-menu button.
func BackToMain() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🏠 Main menu", Unique: KeyBackToMain},
	})
}

// BackToAdmin is a single back-to-admin-panel button.
func BackToAdmin() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "👑 Admin panel", Unique: KeyBackToAdmin},
	})
}

// Cancel offers to abort the current multi-step flow.
func Cancel() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "❌ Cancel", Unique: KeyCancel}},
		[]keyboard.InlineBtn{{Text: "🏠 Main menu", Unique: KeyBackToMain}},
	)
}

// SubscriptionPrompt lists the channels the user still has to join, one
// URL button per channel, plus a verify button.
func SubscriptionPrompt(missing []storage.Channel) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([][]tele.InlineButton, 0, len(missing)+2)
	for _, ch := range missing {
		btn := markup.URL("📢 "+truncate(ch.Title, maxButtonTitle), channelURL(ch))
		rows = append(rows, []tele.InlineButton{*btn.Inline()})
	}
	verify := markup.Data("✅ Verify", KeyCheckSub)
	home := markup.Data("🏠 Main menu", KeyBackToMain)
	rows = append(rows, []tele.InlineButton{*verify.Inline()})
	rows = append(rows, []tele.InlineButton{*home.Inline()})
	markup.InlineKeyboard = rows
	return markup
}

// BundleList shows one button per bundle with its item count.
func BundleList(bundles []storage.BundleWithCount) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(bundles)+2)
	for _, b := range bundles {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fmt.Sprintf("📁 %s (%d files)", b.Code, b.Items),
			Unique: KeyViewFile,
			Data:   strconv.FormatInt(b.ID, 10),
		})
	}
	buttons = append(buttons,
		keyboard.InlineBtn{Text: "👑 Admin panel", Unique: KeyBackToAdmin},
		keyboard.InlineBtn{Text: "🏠 Main menu", Unique: KeyBackToMain},
	)
	return keyboard.InlineButtons(buttons)
}

// BundleActions offers download and delete for one bundle.
func BundleActions(bundleID int64) *tele.ReplyMarkup {
	id := strconv.FormatInt(bundleID, 10)
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📥 Download", Unique: KeyDownloadFile, Data: id},
		{Text: "🗑 Delete", Unique: KeyDeleteFile, Data: id},
		{Text: "👑 Admin panel", Unique: KeyBackToAdmin},
		{Text: "🏠 Main menu", Unique: KeyBackToMain},
	})
}

// ChannelRemoveList shows one button per channel for removal.
func ChannelRemoveList(channels []storage.Channel) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(channels)+2)
	for _, ch := range channels {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   "📢 " + truncate(ch.Title, maxButtonTitle),
			Unique: KeyRemoveChannelID,
			Data:   strconv.FormatInt(ch.ChatID, 10),
		})
	}
	buttons = append(buttons,
		keyboard.InlineBtn{Text: "👑 Admin panel", Unique: KeyBackToAdmin},
		keyboard.InlineBtn{Text: "🏠 Main menu", Unique: KeyBackToMain},
	)
	return keyboard.InlineButtons(buttons)
}

// WhitelistRemoveList shows one button per whitelisted user for removal.
func WhitelistRemoveList(entries []storage.WhitelistedUser) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(entries)+2)
	for _, e := range entries {
		name := e.FirstName
		if e.Username.Valid && e.Username.String != "" {
			name = e.Username.String
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   "👤 " + truncate(name, 20),
			Unique: KeyRemoveWLUser,
			Data:   strconv.FormatInt(e.UserID, 10),
		})
	}
	buttons = append(buttons,
		keyboard.InlineBtn{Text: "👑 Admin panel", Unique: KeyBackToAdmin},
		keyboard.InlineBtn{Text: "🏠 Main menu", Unique: KeyBackToMain},
	)
	return keyboard.InlineButtons(buttons)
}

func channelURL(ch storage.Channel) string {
	if ch.Username.Valid && ch.Username.String != "" {
		return "https://t.me/" + ch.Username.String
	}
	// Private channels have no handle; link via the internal chat id with
	// the -100 prefix stripped.
	id := strconv.FormatInt(ch.ChatID, 10)
	if len(id) > 4 {
		id = id[4:]
	}
	return "https://t.me/c/" + id
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
