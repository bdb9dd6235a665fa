package handler

import (
	"spoilerbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// deliver sends content to the recipient. Send failures are logged and
// the remaining parts are still attempted; the first error is returned.
func (h *Handler) deliver(to tele.Recipient, content domain.Content) error {
	parts := outgoing(content)
	if len(parts) == 0 {
		h.logger.Warn("Nothing to deliver for content",
			zap.String("kind", string(kindOf(content))),
		)
		return nil
	}

	var firstErr error
	for _, what := range parts {
		if _, err := h.sender.Send(to, what); err != nil {
			h.logger.Error("Failed to deliver spoiler",
				zap.String("recipient", to.Recipient()),
				zap.String("kind", string(kindOf(content))),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func kindOf(c domain.Content) domain.ContentKind {
	if c == nil {
		return ""
	}
	return c.Kind()
}
