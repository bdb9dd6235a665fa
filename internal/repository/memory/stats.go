// Package memory provides in-process repository implementations used when
// no database is configured.
package memory

import (
	"sync"
	"time"

	"spoilerbot/internal/domain"
)

type statsKey struct {
	day   time.Time
	event domain.StatsEvent
}

// StatsRepo implements repository.StatsRepository in memory
type StatsRepo struct {
	mu      sync.Mutex
	counts  map[statsKey]int64
	timeNow func() time.Time
}

// NewStatsRepo creates an empty in-memory stats repository
func NewStatsRepo() *StatsRepo {
	return &StatsRepo{
		counts:  make(map[statsKey]int64),
		timeNow: time.Now,
	}
}

// SetTimeNow replaces the clock used by CleanOldStats
func (r *StatsRepo) SetTimeNow(timeNow func() time.Time) {
	r.timeNow = timeNow
}

// Increment adds one to the counter of event on day
func (r *StatsRepo) Increment(day time.Time, event domain.StatsEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.counts[statsKey{day: domain.Truncate(day), event: event}]++
	return nil
}

// GetDay returns all counters for day
func (r *StatsRepo) GetDay(day time.Time) (*domain.DailyStats, error) {
	date := domain.Truncate(day)

	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.DailyStats{Date: date}
	for key, n := range r.counts {
		if key.day.Equal(date) {
			stats.Add(key.event, n)
		}
	}
	return stats, nil
}

// CleanOldStats deletes counters older than specified days
func (r *StatsRepo) CleanOldStats(days int) error {
	cutoff := domain.Truncate(r.timeNow()).AddDate(0, 0, -days)

	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.counts {
		if key.day.Before(cutoff) {
			delete(r.counts, key)
		}
	}
	return nil
}
