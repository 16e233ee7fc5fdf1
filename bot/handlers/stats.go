package handlers

import (
	tele "gopkg.in/telebot.v4"

	"filegate/bot/ui"
	tghelpers "filegate/core/telegram/helpers"
	"filegate/service/stats"
)

// ShowStatistics renders the usage counters for an admin.
func (h *Handlers) ShowStatistics(c tele.Context) error {
	if !h.requireAdmin(c) {
		return nil
	}
	snapshot, err := stats.Collect(h.ctx(c), h.repo)
	if err != nil {
		return err
	}
	return tghelpers.EditOrSendMD(c, ui.Statistics(snapshot), ui.BackToAdmin())
}
