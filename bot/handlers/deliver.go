package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/storage"
)

// deliver sends every item of a bundle to the requester. A failing item is
// retried once as a plain document and never aborts the rest of the batch.
func (h *Handlers) deliver(c tele.Context, items []storage.BundleItem) error {
	ctx := h.ctx(c)
	// The notice must land before the first item, so it skips the async
	// sender the other outbound messages go through.
	_ = c.Send(ui.Delivering(len(items)), &tele.SendOptions{ParseMode: tele.ModeMarkdown})

	sent := 0
	for _, item := range items {
		if err := c.Send(sendable(item)); err != nil {
			logger.Warn(ctx, "gate", "delivery.retry_as_document",
				slog.String("file_type", string(item.Kind)),
				slog.String("err", err.Error()),
			)
			doc := &tele.Document{
				File:    tele.File{FileID: item.FileID},
				Caption: ui.ItemCaption(item),
			}
			if err := c.Send(doc); err != nil {
				logger.Error(ctx, "gate", "delivery.item_failed",
					slog.String("file_type", string(item.Kind)),
					slog.String("err", err.Error()),
				)
				continue
			}
		}
		sent++
	}

	logger.Info(ctx, "gate", "delivery.done",
		slog.Int("items", sent),
	)
	isAdmin := h.access.IsAdmin(ctx, c.Sender().ID)
	return tghelpers.SendMD(c, ui.TextAllSent, ui.MainMenu(isAdmin))
}

// sendable maps a stored item onto the matching outgoing media type.
func sendable(item storage.BundleItem) tele.Sendable {
	file := tele.File{FileID: item.FileID}
	caption := ui.ItemCaption(item)
	switch item.Kind {
	case storage.KindPhoto:
		return &tele.Photo{File: file, Caption: caption}
	case storage.KindVideo:
		return &tele.Video{File: file, Caption: caption}
	default:
		return &tele.Document{File: file, Caption: caption, FileName: item.DisplayName()}
	}
}
