package handler

import (
	"spoilerbot/internal/middleware"
	"spoilerbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender delivers messages to a chat. *tele.Bot implements it.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot            *tele.Bot
	sender         Sender
	spoilerService *service.SpoilerService
	statsService   *service.StatsService
	logger         *zap.Logger
	botUsername    string
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	spoilerService *service.SpoilerService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	username := ""
	if bot.Me != nil {
		username = bot.Me.Username
	}
	return &Handler{
		bot:            bot,
		sender:         bot,
		spoilerService: spoilerService,
		statsService:   statsService,
		logger:         logger,
		botUsername:    username,
	}
}

// mediaEndpoints carry spoiler content in a private chat
var mediaEndpoints = []string{
	tele.OnPhoto,
	tele.OnAnimation,
	tele.OnAudio,
	tele.OnContact,
	tele.OnDice,
	tele.OnDocument,
	tele.OnLocation,
	tele.OnSticker,
	tele.OnVideo,
	tele.OnVideoNote,
	tele.OnVoice,
	tele.OnVenue,
	tele.OnPoll,
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleHelp)
	h.bot.Handle("/spoiler", h.handleSpoiler)
	h.bot.Handle("/cancel", h.handleCancel)
	h.bot.Handle("/stats", h.handleStats)

	// Spoiler content and titles, private chats only
	private := h.bot.Group()
	private.Use(middleware.PrivateOnly(h.logger))
	private.Handle(tele.OnText, h.handleMessage)
	for _, endpoint := range mediaEndpoints {
		private.Handle(endpoint, h.handleMessage)
	}

	// Inline mode
	h.bot.Handle(tele.OnQuery, h.handleQuery)

	// Reveal buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// isPrivate reports whether the update came from a one-to-one chat
func isPrivate(c tele.Context) bool {
	chat := c.Chat()
	return chat != nil && chat.Type == tele.ChatPrivate
}
