package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
//
// In a private chat an empty payload or CreateCustomSpoiler begins the
// creation dialog, and a payload "id-_-<id>" sends that spoiler's content.
// Anywhere else it answers with usage help.
func (h *Handler) handleStart(c tele.Context) error {
	if !isPrivate(c) {
		return h.handleHelp(c)
	}

	userID := c.Sender().ID
	payload := strings.TrimSpace(c.Message().Payload)

	if payload == "" || payload == CreateCustomSpoiler {
		h.logger.Info("User started spoiler creation",
			zap.Int64("user_id", userID),
			zap.String("username", c.Sender().Username),
		)

		h.spoilerService.StartCreation(userID)
		return c.Send(msgPreparingASpoiler)
	}

	id := strings.TrimPrefix(payload, InlineQuerySeparator)
	spoiler, ok := h.spoilerService.Spoiler(id)
	if !ok {
		return c.Send(msgSpoilerNotFound)
	}

	h.logger.Debug("Sending spoiler in private chat",
		zap.Int64("user_id", userID),
		zap.String("spoiler_id", id),
	)
	return h.deliver(c.Sender(), spoiler.Content)
}
