package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/duration"
	"spoilerbot/internal/registry"

	"go.uber.org/zap"
)

// TitleSeparator splits an inline query into title and body
const TitleSeparator = ":::"

var (
	// ErrTitleTooLong is returned when a title exceeds domain.MaxTitleLength
	ErrTitleTooLong = errors.New("spoiler title is too long")
	// ErrEmptySpoiler is returned when a quick spoiler has no body
	ErrEmptySpoiler = errors.New("spoiler content is empty")
)

// RevealResult tells the transport what to do with a reveal request
type RevealResult int

const (
	RevealNotFound RevealResult = iota
	RevealTapAgain
	RevealShow
)

func (r RevealResult) String() string {
	switch r {
	case RevealTapAgain:
		return "tap_again"
	case RevealShow:
		return "show"
	default:
		return "not_found"
	}
}

// SpoilerService handles spoiler creation and reveal logic
type SpoilerService struct {
	registry *registry.Registry
	stats    *StatsService
	logger   *zap.Logger
}

// NewSpoilerService creates a new spoiler service
func NewSpoilerService(reg *registry.Registry, stats *StatsService, logger *zap.Logger) *SpoilerService {
	return &SpoilerService{
		registry: reg,
		stats:    stats,
		logger:   logger,
	}
}

// StartCreation begins the two-step dialog for the user
func (s *SpoilerService) StartCreation(userID int64) {
	if prev, ok := s.registry.BeginCreation(userID); ok {
		s.logger.Debug("Restarting spoiler creation",
			zap.Int64("user_id", userID),
			zap.String("previous_status", string(prev)),
		)
	}
}

// CancelCreation aborts the dialog. It returns false if the user was not
// creating a spoiler.
func (s *SpoilerService) CancelCreation(userID int64) bool {
	_, ok := s.registry.CancelCreation(userID)
	return ok
}

// IsAwaitingContent reports whether the next message from the user is content
func (s *SpoilerService) IsAwaitingContent(userID int64) bool {
	return s.registry.IsAwaitingContent(userID)
}

// IsAwaitingTitle reports whether the next text from the user is a title
func (s *SpoilerService) IsAwaitingTitle(userID int64) bool {
	return s.registry.IsAwaitingTitle(userID)
}

// SubmitContent stages content and moves the dialog to the title step.
// It returns false when the user is not waiting to send content or the
// content kind cannot be spoiled.
func (s *SpoilerService) SubmitContent(userID int64, content domain.Content) bool {
	if content == nil || content.Kind() == domain.KindUnsupported {
		return false
	}
	if !s.registry.IsAwaitingContent(userID) {
		return false
	}

	s.registry.StageContent(userID, content)
	s.registry.AwaitTitle(userID)
	return true
}

// SubmitTitle finalizes the staged content with the given title and ends
// the dialog. A trailing duration like "/5m" sets a custom expiry.
//
// A title that is too long keeps the dialog open so the user can retry.
func (s *SpoilerService) SubmitTitle(userID int64, text string) (domain.Spoiler, error) {
	if utf8.RuneCountInString(duration.StripSuffix(text)) > domain.MaxTitleLength {
		return domain.Spoiler{}, ErrTitleTooLong
	}

	id, err := s.registry.Finalize(userID, text, parseExpiry(text))
	s.registry.CancelCreation(userID)
	if err != nil {
		return domain.Spoiler{}, err
	}

	s.stats.RecordCreated()

	spoiler, ok := s.registry.Lookup(id)
	if !ok {
		// a "/0s" spoiler may be swept before we get here
		spoiler = domain.Spoiler{ID: id}
	}

	s.logger.Info("Spoiler created",
		zap.Int64("user_id", userID),
		zap.String("spoiler_id", id),
		zap.String("kind", string(kindOf(spoiler.Content))),
		zap.Duration("expires_in", spoiler.ExpiresIn),
	)
	return spoiler, nil
}

// QuickSpoiler creates a text spoiler from an inline query of the form
// "body" or "title:::body", each optionally ending in a duration. The
// user's dialog state is left untouched.
func (s *SpoilerService) QuickSpoiler(userID int64, raw string) (domain.Spoiler, error) {
	title, body := ParseQuickQuery(raw)
	body = duration.StripSuffix(body)

	if strings.TrimSpace(body) == "" {
		return domain.Spoiler{}, ErrEmptySpoiler
	}
	if utf8.RuneCountInString(duration.StripSuffix(title)) > domain.MaxTitleLength {
		return domain.Spoiler{}, ErrTitleTooLong
	}
	if title == "" {
		title = domain.NoTitle
	}

	spoiler := s.registry.Store(title, domain.RawString{Value: body}, parseExpiry(raw))
	s.stats.RecordCreated()

	s.logger.Debug("Quick spoiler created",
		zap.Int64("user_id", userID),
		zap.String("spoiler_id", spoiler.ID),
		zap.Duration("expires_in", spoiler.ExpiresIn),
	)
	return spoiler, nil
}

// ParseQuickQuery splits raw on the first title separator. Without a
// separator the whole query is the body.
func ParseQuickQuery(raw string) (title, body string) {
	parts := strings.SplitN(raw, TitleSeparator, 2)
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], parts[1]
}

// Reveal decides whether userID may see spoiler id now. Major spoilers
// need two taps; every other tap answers RevealTapAgain.
func (s *SpoilerService) Reveal(userID int64, id string, major bool) (RevealResult, domain.Spoiler) {
	spoiler, ok := s.registry.Lookup(id)
	if !ok {
		return RevealNotFound, domain.Spoiler{}
	}

	if major {
		needsSecondTap, found := s.registry.RevealTap(userID, id)
		if !found {
			return RevealNotFound, domain.Spoiler{}
		}
		if needsSecondTap {
			return RevealTapAgain, domain.Spoiler{}
		}
	}

	s.stats.RecordRevealed()
	return RevealShow, spoiler
}

// Spoiler returns the spoiler with the given id
func (s *SpoilerService) Spoiler(id string) (domain.Spoiler, bool) {
	return s.registry.Lookup(id)
}

// Title returns the title of an existing spoiler
func (s *SpoilerService) Title(id string) (string, bool) {
	return s.registry.TitleOf(id)
}

func kindOf(c domain.Content) domain.ContentKind {
	if c == nil {
		return ""
	}
	return c.Kind()
}

func parseExpiry(text string) *time.Duration {
	d, ok := duration.Parse(text)
	if !ok {
		return nil
	}
	return &d
}
