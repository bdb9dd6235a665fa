package testutil

import (
	"time"

	"spoilerbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a Telegram user
func NewTestUser(userID int64) *tele.User {
	return &tele.User{
		ID:        userID,
		FirstName: "Test",
		Username:  "test_user",
	}
}

// NewTestSpoiler creates a spoiler that expires in a day
func NewTestSpoiler(id, title string, content domain.Content) domain.Spoiler {
	s := domain.Spoiler{
		ID:        id,
		Content:   content,
		ExpiresIn: domain.DefaultExpiry,
		ExpiresAt: time.Now().Add(domain.DefaultExpiry),
	}
	if title != "" {
		s.Title = &title
	}
	return s
}
