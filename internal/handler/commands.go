package handler

import (
	"fmt"

	"spoilerbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleHelp handles /help command
func (h *Handler) handleHelp(c tele.Context) error {
	return c.Reply(helpText(h.username()))
}

// handleSpoiler handles /spoiler command
func (h *Handler) handleSpoiler(c tele.Context) error {
	return c.Reply(msgTypeStart)
}

// handleCancel handles /cancel command
func (h *Handler) handleCancel(c tele.Context) error {
	if !h.spoilerService.CancelCreation(c.Sender().ID) {
		return c.Reply(msgNothingToCancel)
	}

	h.logger.Info("Spoiler creation cancelled", zap.Int64("user_id", c.Sender().ID))
	return c.Reply(msgCreationCancelled)
}

// handleStats handles /stats command
func (h *Handler) handleStats(c tele.Context) error {
	stats, err := h.statsService.Today()
	if err != nil {
		h.logger.Error("Failed to load stats", zap.Error(err))
		return c.Reply(msgSomethingWent)
	}
	return c.Reply(formatStats(stats))
}

func formatStats(stats *domain.DailyStats) string {
	return fmt.Sprintf("📊 %s\n\nCreated: %d\nRevealed: %d\nExpired: %d",
		stats.DisplayString(),
		stats.Created,
		stats.Revealed,
		stats.Expired,
	)
}

func (h *Handler) username() string {
	if h.botUsername == "" {
		return "my bot username"
	}
	return h.botUsername
}
