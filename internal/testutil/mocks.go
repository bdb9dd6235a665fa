package testutil

import (
	"time"

	"spoilerbot/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockStatsRepository is a mock for StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Increment(day time.Time, event domain.StatsEvent) error {
	args := m.Called(day, event)
	return args.Error(0)
}

func (m *MockStatsRepository) GetDay(day time.Time) (*domain.DailyStats, error) {
	args := m.Called(day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyStats), args.Error(1)
}

func (m *MockStatsRepository) CleanOldStats(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockSender is a mock for the bot's Send method
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}
