package handler

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseRevealData extracts the spoiler id from "id-_-<id>" or
// "maj_id-_-<id>"
func parseRevealData(data string) (id string, major bool, ok bool) {
	major = strings.HasPrefix(data, MajorSpoilerPrefix)
	rest := strings.TrimPrefix(data, MajorSpoilerPrefix)
	if !strings.HasPrefix(rest, InlineQuerySeparator) {
		return "", false, false
	}

	id = strings.TrimPrefix(rest, InlineQuerySeparator)
	if id == "" {
		return "", false, false
	}
	return id, major, true
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	id, major, ok := parseRevealData(data)
	if !ok {
		h.logger.Warn("Unhandled callback in handleCallback",
			zap.String("data", data),
			zap.String("unique", callback.Unique),
		)
		return c.Respond()
	}

	userID := c.Sender().ID
	result, spoiler := h.spoilerService.Reveal(userID, id, major)

	h.logger.Debug("Reveal requested",
		zap.Int64("user_id", userID),
		zap.String("spoiler_id", id),
		zap.Bool("major", major),
		zap.Stringer("result", result),
	)

	switch result {
	case service.RevealTapAgain:
		return c.Respond(&tele.CallbackResponse{Text: msgTapAgain})
	case service.RevealShow:
		if text, ok := alertText(spoiler.Content); ok {
			return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
		}
		return c.Respond(&tele.CallbackResponse{URL: h.startURL(id)})
	default:
		return c.Respond(&tele.CallbackResponse{Text: msgSpoilerNotFound})
	}
}

// alertText returns content that fits into a callback alert
func alertText(content domain.Content) (string, bool) {
	text, ok := domain.TextValue(content)
	if !ok || utf8.RuneCountInString(text) > MaxAlertLength {
		return "", false
	}
	return text, true
}

// startURL is a deep link that opens a private chat and sends the spoiler
func (h *Handler) startURL(id string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", h.botUsername, InlineQuerySeparator, id)
}
