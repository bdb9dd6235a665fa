package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval bounds how long the sweeper sleeps between passes
const DefaultSweepInterval = time.Second

// ExpirySource is the part of the registry the sweeper drives
type ExpirySource interface {
	PollExpired() (string, bool)
	NextDeadline() (time.Time, bool)
	Wakeup() <-chan struct{}
	RemoveExpired(id string)
}

// Sweeper removes spoilers whose lifetime has ended
type Sweeper struct {
	source   ExpirySource
	stats    *StatsService
	interval time.Duration
	logger   *zap.Logger
	timeNow  func() time.Time
}

// NewSweeper creates a sweeper. A non-positive interval falls back to
// DefaultSweepInterval.
func NewSweeper(source ExpirySource, stats *StatsService, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		source:   source,
		stats:    stats,
		interval: interval,
		logger:   logger,
		timeNow:  time.Now,
	}
}

// SetTimeNow replaces the clock used to compute sleep times
func (s *Sweeper) SetTimeNow(timeNow func() time.Time) {
	s.timeNow = timeNow
}

// Run sweeps until ctx is cancelled. Between passes it sleeps until the
// earliest deadline, the polling interval, or a wakeup from the registry,
// whichever comes first.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("Expiration sweeper started", zap.Duration("interval", s.interval))

	for {
		s.sweepOnce()

		timer := time.NewTimer(s.nextWait())
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Expiration sweeper stopped")
			return nil
		case <-s.source.Wakeup():
			timer.Stop()
		case <-timer.C:
		}
	}
}

// sweepOnce removes every spoiler that is due and returns how many
func (s *Sweeper) sweepOnce() int {
	removed := 0
	for {
		id, ok := s.source.PollExpired()
		if !ok {
			break
		}

		s.source.RemoveExpired(id)
		s.stats.RecordExpired()
		removed++

		s.logger.Debug("Spoiler expired", zap.String("spoiler_id", id))
	}
	return removed
}

func (s *Sweeper) nextWait() time.Duration {
	wait := s.interval
	if deadline, ok := s.source.NextDeadline(); ok {
		if d := deadline.Sub(s.timeNow()); d < wait {
			wait = d
		}
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}
