package domain

import "time"

const (
	// DefaultExpiry is how long a spoiler lives when no duration is given
	DefaultExpiry = 24 * time.Hour

	// MaxTitleLength is the longest title accepted, in runes
	MaxTitleLength = 256

	// NoTitle is the title text that means "no title"
	NoTitle = "-"
)

// Spoiler is a finished spoiler. It is never modified after creation.
type Spoiler struct {
	ID        string
	Title     *string
	Content   Content
	ExpiresIn time.Duration
	ExpiresAt time.Time
}

// TitleOrEmpty returns the title, or "" if the spoiler has none
func (s Spoiler) TitleOrEmpty() string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}

// Clone returns a copy that shares no mutable memory with s
func (s Spoiler) Clone() Spoiler {
	if s.Title != nil {
		title := *s.Title
		s.Title = &title
	}
	if p, ok := s.Content.(Photo); ok {
		p.FileIDs = append([]string(nil), p.FileIDs...)
		s.Content = p
	}
	return s
}

// ExpiryString returns the deadline in UTC, e.g. "2024-06-15 18:30 UTC"
func (s Spoiler) ExpiryString() string {
	return s.ExpiresAt.UTC().Format("2006-01-02 15:04 MST")
}

// CreationStatus is where a user is in the spoiler creation dialog
type CreationStatus string

const (
	StatusWaitingForSpoiler CreationStatus = "waiting_for_spoiler"
	StatusWaitingForTitle   CreationStatus = "waiting_for_title"
)
