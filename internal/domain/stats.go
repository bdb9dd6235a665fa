package domain

import "time"

// StatsEvent is a counted spoiler lifecycle event
type StatsEvent string

const (
	EventCreated  StatsEvent = "created"
	EventRevealed StatsEvent = "revealed"
	EventExpired  StatsEvent = "expired"
)

// DailyStats holds event counters for one day
type DailyStats struct {
	Date     time.Time
	Created  int64
	Revealed int64
	Expired  int64
}

// Add increments the counter for event by n. Unknown events are ignored.
func (d *DailyStats) Add(event StatsEvent, n int64) {
	switch event {
	case EventCreated:
		d.Created += n
	case EventRevealed:
		d.Revealed += n
	case EventExpired:
		d.Expired += n
	}
}

// DateString returns date in YYYYMMDD format
func (d DailyStats) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string
func (d DailyStats) DisplayString() string {
	date := Truncate(d.Date)
	today := Truncate(time.Now())

	switch {
	case date.Equal(today):
		return "Today"
	case date.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	}

	return date.Format("2 Jan 2006")
}

// Truncate returns t at midnight UTC
func Truncate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
