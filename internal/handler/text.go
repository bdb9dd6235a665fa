package handler

import (
	"errors"
	"strings"
	"unicode/utf16"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/registry"
	"spoilerbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleMessage handles text and media sent in a private chat, according
// to the user's creation state
func (h *Handler) handleMessage(c tele.Context) error {
	userID := c.Sender().ID
	msg := c.Message()

	switch {
	case isBotCommand(msg):
		// unregistered commands end up here
		if h.spoilerService.IsAwaitingContent(userID) || h.spoilerService.IsAwaitingTitle(userID) {
			return c.Reply(msgUnknownCommand)
		}
		return nil

	case h.spoilerService.IsAwaitingTitle(userID):
		if msg.Text == "" {
			return c.Reply(msgNowSendATitle)
		}
		return h.handleTitle(c, userID, msg.Text)

	case h.spoilerService.IsAwaitingContent(userID):
		content := contentFromMessage(msg)
		if content.Kind() == domain.KindUnsupported {
			h.logger.Debug("Unsupported spoiler content",
				zap.Int64("user_id", userID),
				zap.Any("content", content),
			)
			return c.Reply(msgUnsupported)
		}

		if !h.spoilerService.SubmitContent(userID, content) {
			return nil
		}
		return c.Reply(msgNowSendATitle)

	default:
		return nil
	}
}

// isBotCommand reports whether the message text starts with a command
// Telegram marked as such, e.g. "/stop" but not "/r/golang"
func isBotCommand(m *tele.Message) bool {
	if len(m.Entities) == 0 {
		return false
	}
	e := m.Entities[0]
	if e.Type != tele.EntityCommand || e.Offset != 0 {
		return false
	}

	fields := strings.Fields(m.Text)
	if len(fields) == 0 {
		return false
	}
	// entity lengths count UTF-16 code units
	return e.Length == len(utf16.Encode([]rune(fields[0])))
}

func (h *Handler) handleTitle(c tele.Context, userID int64, text string) error {
	spoiler, err := h.spoilerService.SubmitTitle(userID, text)
	switch {
	case errors.Is(err, service.ErrTitleTooLong):
		return c.Reply(msgTitleTooLong)
	case errors.Is(err, registry.ErrNoPendingContent):
		return c.Reply(msgTypeStart)
	case err != nil:
		h.logger.Error("Failed to finalize spoiler",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Reply(msgSomethingWent)
	}

	return c.Reply(msgSpoilerReady, sendItMarkup(spoiler.ID))
}
