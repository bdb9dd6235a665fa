package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// PrivateOnly drops updates that do not come from a private chat with a
// known sender. Spoiler content and titles are only accepted there.
func PrivateOnly(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != tele.ChatPrivate || c.Sender() == nil {
				if chat != nil {
					logger.Debug("Ignoring update outside private chat",
						zap.Int64("chat_id", chat.ID),
						zap.String("chat_type", string(chat.Type)),
					)
				}
				return nil
			}

			return next(c)
		}
	}
}
