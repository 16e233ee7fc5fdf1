package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"filegate/core/telegram/format"
	"filegate/service/stats"
	"filegate/storage"
)

// mdSafe escapes user-supplied names and titles interpolated into
// Markdown messages.
func mdSafe(s string) string {
	escaped, err := format.EscapeMarkdown(s, format.MarkdownV1, "")
	if err != nil {
		return s
	}
	return escaped
}

// Static texts. Markdown (V1) is used throughout, matching the send
// helpers in core/telegram/helpers.
const (
	TextWelcome = "✨ *Welcome!* ✨\n\n" +
		"📁 This bot hands out file bundles in exchange for short codes.\n\n" +
		"• Send a redemption code to receive its files\n" +
		"• You may need to join the required channels first\n\n" +
		"👇 Pick an option below:"
	TextWelcomeAdmin = "\n\n👑 *You are signed in as an admin*"
	TextMainMenu     = "✨ *Main menu* ✨\n\nPick an option below:"
	TextAdminPanel   = "👑 *Admin panel*"

	TextAbout = "🤖 *About this bot*\n\n" +
		"Files are grouped into bundles and distributed through short codes.\n\n" +
		"• One code unlocks a whole bundle\n" +
		"• Channel subscription can be required before redemption\n" +
		"• Whitelisted users skip the subscription check"
	TextCreator = "👨‍💻 *Author*\n\n" +
		"Questions and suggestions are welcome — reach out any time."

	TextAskCode = "🔑 *Send the file code*\n\n" +
		"The code is 8 characters long (A-Z, 0-9)."
	TextBadCodeFormat = "❌ *Invalid code format.*\n\n" +
		"A code is exactly 8 characters (A-Z, 0-9), for example `ABC123XY`."
	TextCodeNotFound = "❌ *No such code.*\n\nCheck the code and try again."
	TextBundleEmpty  = "❌ *This code has no files attached.*"
	TextAllSent      = "✅ *All files sent!*"

	TextSubscribeFirst = "❗️ To use the bot, join the channels below first:"
	TextStillMissing   = "❗️ *You still have not joined these channels:*"
	TextSubscribed     = "✅ *Subscription confirmed!*\n\nYou can send a code now."

	TextAskFiles = "📤 *Upload files*\n\n" +
		"Send your files one by one; photos, videos, and documents are accepted.\n" +
		"Send /done when you are finished."
	TextNothingUploaded = "❌ *No files were uploaded.*"
	TextSendAFile       = "❌ *Please send a file.*\n\nPhotos, videos, and documents are accepted."

	TextAskChannel = "➕ *Add a channel*\n\n" +
		"Send the channel handle or link, for example `@channel` or `https://t.me/channel`.\n\n" +
		"⚠️ The bot must be an admin of that channel."
	TextBadChannelFormat = "❌ *That does not look like a channel.*\n\n" +
		"Use `@channel` or `https://t.me/channel`."
	TextChannelNotFound = "❌ *Channel not found, or the bot is not an admin there.*\n\n" +
		"Add the bot as a channel admin and try again."
	TextNoChannels = "❌ *No channels are configured.*"
	TextPickChannelToRemove = "➖ *Pick a channel to remove*"

	TextAskWhitelistUser = "👤 *Add to whitelist*\n\n" +
		"Send the user's handle or id, for example `@username` or `123456789`.\n\n" +
		"Whitelisted users receive files without joining any channel."
	TextUserNotKnown = "❌ *User not found.*\n\n" +
		"The user has to start the bot first."
	TextWhitelistEmpty    = "❌ *The whitelist is empty.*"
	TextPickWLUserRemove  = "➖ *Pick a user to remove from the whitelist*"
	TextWhitelistConflict = "❌ *Nothing changed.*\n\nThe user is probably whitelisted already."

	TextCancelled = "❌ *Cancelled.*"
	TextNoAccess  = "❌ No access"
)

// Delivering formats the pre-delivery notice.
func Delivering(count int) string {
	return fmt.Sprintf("📥 *Sending %d file(s)...*", count)
}

// FileReceived formats the per-file upload progress message.
func FileReceived(name string, size int64, total int) string {
	sizeInfo := ""
	if size > 0 {
		sizeInfo = " | " + humanize.Bytes(uint64(size))
	}
	return fmt.Sprintf("✅ *File received*\n\n📁 %s%s\n📊 Collected: %d file(s)\n\n"+
		"Send more files or /done to finish.", mdSafe(name), sizeInfo, total)
}

// UploadDone formats the completion message with the new code.
func UploadDone(code string, count int) string {
	return fmt.Sprintf("✅ *Files stored!*\n\n📌 *Code:* `%s`\n📊 *Files:* %d\n\n"+
		"🔍 Users redeem this code to receive the bundle.", code, count)
}

// ItemCaption formats the caption for one delivered item.
func ItemCaption(item storage.BundleItem) string {
	caption := "📁 " + item.DisplayName()
	if item.Size.Valid && item.Size.Int64 > 0 {
		caption += " | " + humanize.Bytes(uint64(item.Size.Int64))
	}
	return caption
}

// ChannelAdded formats the confirmation after registering a channel.
func ChannelAdded(title, username string) string {
	handle := "hidden"
	if username != "" {
		handle = "@" + username
	}
	return fmt.Sprintf("✅ *Channel added!*\n\n📢 *Title:* %s\n🔗 *Handle:* %s\n\n"+
		"Users now have to join it before redeeming codes.", mdSafe(title), handle)
}

// ChannelRemoved formats the confirmation after removing a channel.
func ChannelRemoved(title string) string {
	return fmt.Sprintf("✅ *Channel removed!*\n\n📢 %s", mdSafe(title))
}

// ChannelListing renders the numbered list of gating channels.
func ChannelListing(channels []storage.Channel) string {
	var b strings.Builder
	b.WriteString("📋 *Required channels:*\n\n")
	for i, ch := range channels {
		handle := "🔒 private channel"
		if ch.Username.Valid && ch.Username.String != "" {
			handle = "@" + ch.Username.String
		}
		fmt.Fprintf(&b, "%d. *%s*\n   %s\n", i+1, mdSafe(ch.Title), handle)
	}
	return b.String()
}

// WhitelistAdded formats the confirmation after whitelisting a user.
func WhitelistAdded(display string) string {
	return fmt.Sprintf("✅ *User whitelisted!*\n\n👤 *User:* %s\n"+
		"⚠️ Channel subscription no longer applies to them.", mdSafe(display))
}

// WhitelistRemoved formats the confirmation after removing an exemption.
func WhitelistRemoved(display string) string {
	return fmt.Sprintf("✅ *User removed from the whitelist!*\n\n"+
		"👤 %s has to join the channels again.", mdSafe(display))
}

// BundleListHeader formats the bundle list intro.
func BundleListHeader(count int) string {
	return fmt.Sprintf("📂 *Your bundles*\n\nTotal: %d bundle(s)", count)
}

// Statistics renders the statistics snapshot.
func Statistics(s stats.Snapshot) string {
	return fmt.Sprintf("📊 *Bot statistics*\n\n"+
		"👥 *Users:* %d\n"+
		"📁 *Bundles:* %d\n"+
		"📄 *Files:* %d\n"+
		"📢 *Channels:* %d\n"+
		"👤 *Whitelisted:* %d",
		s.Users, s.Bundles, s.Items, s.Channels, s.Whitelist)
}

// BundleContents renders the numbered item listing of one bundle.
func BundleContents(items []storage.BundleItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📁 *Bundle contents* (%d files)\n\n", len(items))
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, mdSafe(item.DisplayName()))
	}
	return b.String()
}
