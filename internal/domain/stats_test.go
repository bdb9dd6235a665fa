package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyStats_DateString(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "date 2024-12-12",
			date:     time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC),
			expected: "20241212",
		},
		{
			name:     "date 2024-01-01",
			date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "20240101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := DailyStats{Date: tt.date}
			assert.Equal(t, tt.expected, stats.DateString())
		})
	}
}

func TestDailyStats_DisplayString(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "today",
			date:     now,
			expected: "Today",
		},
		{
			name:     "yesterday",
			date:     yesterday,
			expected: "Yesterday",
		},
		{
			name:     "specific date",
			date:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expected: "15 Jun 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := DailyStats{Date: tt.date}
			assert.Equal(t, tt.expected, stats.DisplayString())
		})
	}
}

func TestDailyStats_Add(t *testing.T) {
	stats := DailyStats{}
	stats.Add(EventCreated, 3)
	stats.Add(EventRevealed, 2)
	stats.Add(EventExpired, 1)
	stats.Add(StatsEvent("bogus"), 10)

	assert.Equal(t, int64(3), stats.Created)
	assert.Equal(t, int64(2), stats.Revealed)
	assert.Equal(t, int64(1), stats.Expired)
}

func TestTruncate(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2024, 6, 15, 1, 30, 0, 0, moscow)

	// 01:30 MSK is still the previous day in UTC
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), Truncate(in))
}
