package repository

import (
	"time"

	"spoilerbot/internal/domain"
)

// StatsRepository defines usage statistics operations.
// Implementations store aggregate counters only, never spoiler content.
type StatsRepository interface {
	Increment(day time.Time, event domain.StatsEvent) error
	GetDay(day time.Time) (*domain.DailyStats, error)
	CleanOldStats(days int) error
}
