package handlers

import (
	"time"

	tele "gopkg.in/telebot.v4"

	"filegate/storage"
)

const mediaStampLayout = "20060102_150405"

// classify extracts an uploadable item from a message. It reports false
// for messages carrying no supported media.
func classify(m *tele.Message, now time.Time) (storage.ItemDraft, bool) {
	stamp := now.Format(mediaStampLayout)

	switch {
	case m.Photo != nil:
		// Photos arrive without a filename or size.
		return storage.ItemDraft{
			Kind:   storage.KindPhoto,
			FileID: m.Photo.FileID,
			Name:   "photo_" + stamp + ".jpg",
		}, true
	case m.Video != nil:
		name := m.Video.FileName
		if name == "" {
			name = "video_" + stamp + ".mp4"
		}
		return storage.ItemDraft{
			Kind:   storage.KindVideo,
			FileID: m.Video.FileID,
			Name:   name,
			Size:   m.Video.FileSize,
		}, true
	case m.Document != nil:
		return storage.ItemDraft{
			Kind:   storage.KindDocument,
			FileID: m.Document.FileID,
			Name:   m.Document.FileName,
			Size:   m.Document.FileSize,
		}, true
	default:
		return storage.ItemDraft{}, false
	}
}
