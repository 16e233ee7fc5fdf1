package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/service/bundles"
	"filegate/storage"
)

// AskFiles starts an upload batch for an admin.
func (h *Handlers) AskFiles(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	userID := c.Sender().ID
	h.states.SetState(userID, StateAwaitingFiles)
	h.states.SetTemp(userID, tempUploads, []storage.ItemDraft{})
	return tghelpers.EditOrSendMD(c, ui.TextAskFiles, ui.Cancel())
}

// HandleFiles accumulates media while an upload batch is open and finishes
// the batch on /done.
func (h *Handlers) HandleFiles(c tele.Context) error {
	userID := c.Sender().ID

	if strings.TrimSpace(c.Text()) == doneCommand {
		return h.finishUpload(c)
	}

	item, ok := classify(c.Message(), time.Now())
	if !ok {
		return tghelpers.SendMD(c, ui.TextSendAFile, ui.Cancel())
	}

	items := h.uploadBatch(userID)
	items = append(items, item)
	h.states.SetTemp(userID, tempUploads, items)

	size := item.Size
	name := item.Name
	return tghelpers.SendMD(c, ui.FileReceived(name, size, len(items)), ui.Cancel())
}

// finishUpload persists the collected batch under a fresh code.
func (h *Handlers) finishUpload(c tele.Context) error {
	ctx := h.ctx(c)
	userID := c.Sender().ID
	items := h.uploadBatch(userID)

	code, bundleID, err := h.creator.Create(ctx, userID, "", items)
	if errors.Is(err, bundles.ErrEmptyBatch) {
		h.states.Clear(userID)
		return tghelpers.SendMD(c, ui.TextNothingUploaded, ui.AdminMenu())
	}
	if err != nil {
		return err
	}

	h.states.Clear(userID)
	logger.Info(ctx, "service.bundles", "bundle.created",
		slog.String("code", code),
		slog.Int64("bundle_id", bundleID),
		slog.Int("items", len(items)),
	)
	return tghelpers.SendMD(c, ui.UploadDone(code, len(items)), ui.AdminMenu())
}

// uploadBatch returns the batch collected so far, or an empty one.
func (h *Handlers) uploadBatch(userID int64) []storage.ItemDraft {
	val, ok := h.states.GetTemp(userID, tempUploads)
	if !ok {
		return nil
	}
	items, ok := val.([]storage.ItemDraft)
	if !ok {
		return nil
	}
	return items
}
