package service

import (
	"time"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles usage statistics and cleanup
type StatsService struct {
	statsRepo repository.StatsRepository
	logger    *zap.Logger
	timeNow   func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(statsRepo repository.StatsRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
		timeNow:   time.Now,
	}
}

// SetTimeNow replaces the clock used to pick the current day
func (s *StatsService) SetTimeNow(timeNow func() time.Time) {
	s.timeNow = timeNow
}

// RecordCreated counts a new spoiler
func (s *StatsService) RecordCreated() {
	s.record(domain.EventCreated)
}

// RecordRevealed counts a spoiler shown to a user
func (s *StatsService) RecordRevealed() {
	s.record(domain.EventRevealed)
}

// RecordExpired counts a spoiler removed by the sweeper
func (s *StatsService) RecordExpired() {
	s.record(domain.EventExpired)
}

// record never fails the caller; counters are best effort
func (s *StatsService) record(event domain.StatsEvent) {
	if err := s.statsRepo.Increment(s.timeNow(), event); err != nil {
		s.logger.Warn("Failed to record stats event",
			zap.String("event", string(event)),
			zap.Error(err),
		)
	}
}

// Today returns the counters of the current day
func (s *StatsService) Today() (*domain.DailyStats, error) {
	return s.statsRepo.GetDay(s.timeNow())
}

// CleanupOldData removes counters older than retentionDays
func (s *StatsService) CleanupOldData(retentionDays int) error {
	s.logger.Info("Starting cleanup of old stats", zap.Int("retention_days", retentionDays))

	err := s.statsRepo.CleanOldStats(retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old stats", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
