package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	"filegate/core/logger"
	"filegate/core/telegram/callbacks"
	tghelpers "filegate/core/telegram/helpers"
)

// ListBundles shows the stored bundles with their item counts.
func (h *Handlers) ListBundles(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	bundles, err := h.repo.BundlesWithCounts(h.ctx(c))
	if err != nil {
		return err
	}
	if len(bundles) == 0 {
		return tghelpers.EditOrSendMD(c, ui.TextNothingUploaded, ui.BackToAdmin())
	}
	return tghelpers.EditOrSendMD(c, ui.BundleListHeader(len(bundles)), ui.BundleList(bundles))
}

// ViewBundle shows one bundle's contents and its action buttons.
func (h *Handlers) ViewBundle(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	ctx := h.ctx(c)
	bundleID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}

	items, err := h.repo.ItemsByBundle(ctx, bundleID)
	if err != nil {
		return err
	}

	return tghelpers.EditOrSendMD(c, ui.BundleContents(items), ui.BundleActions(bundleID))
}

// DownloadBundle sends the bundle's files to the admin.
func (h *Handlers) DownloadBundle(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	bundleID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}
	items, err := h.repo.ItemsByBundle(h.ctx(c), bundleID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return tghelpers.SendMD(c, ui.TextBundleEmpty, ui.BackToAdmin())
	}
	return h.deliver(c, items)
}

// DeleteBundle removes a bundle and all of its items.
func (h *Handlers) DeleteBundle(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	ctx := h.ctx(c)
	bundleID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return err
	}
	if err := h.repo.DeleteBundle(ctx, bundleID); err != nil {
		return err
	}

	logger.Info(ctx, "service.bundles", "bundle.deleted",
		slog.Int64("bundle_id", bundleID),
	)
	return h.ListBundles(c)
}
