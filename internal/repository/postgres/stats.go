package postgres

import (
	"database/sql"
	"time"

	"spoilerbot/internal/domain"
)

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Increment adds one to the counter of event on day
func (r *StatsRepo) Increment(day time.Time, event domain.StatsEvent) error {
	query := `
		INSERT INTO spoiler_stats (day, event, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (day, event)
		DO UPDATE SET count = spoiler_stats.count + 1
	`
	_, err := r.db.Exec(query, domain.Truncate(day), string(event))
	return err
}

// GetDay returns all counters for day. Days without events yield zero
// counters, not an error.
func (r *StatsRepo) GetDay(day time.Time) (*domain.DailyStats, error) {
	date := domain.Truncate(day)
	query := `
		SELECT event, count
		FROM spoiler_stats
		WHERE day = $1
	`

	rows, err := r.db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &domain.DailyStats{Date: date}
	for rows.Next() {
		var event string
		var count int64
		if err := rows.Scan(&event, &count); err != nil {
			return nil, err
		}
		stats.Add(domain.StatsEvent(event), count)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// CleanOldStats deletes counters older than specified days
func (r *StatsRepo) CleanOldStats(days int) error {
	query := `
		DELETE FROM spoiler_stats
		WHERE day < CURRENT_DATE - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
