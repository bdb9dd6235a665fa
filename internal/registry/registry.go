// Package registry holds all in-memory bot state: creation sessions, content
// waiting for a title, finished spoilers and the double-tap confirmation gate.
//
// Each structure has its own mutex. Locks are taken in the order sessions,
// pending, gate, spoilers, index. Only two nestings exist: Store schedules
// the expiry entry while holding the spoiler lock, and RevealTap checks the
// spoiler table while holding the gate lock. Everything else takes one lock
// at a time. No lock is held while doing I/O.
package registry

import (
	"errors"
	"sync"
	"time"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/duration"
	"spoilerbot/internal/expiry"
	"spoilerbot/internal/idgen"

	"go.uber.org/zap"
)

// ErrNoPendingContent is returned by Finalize when the user has no staged
// content to attach the title to
var ErrNoPendingContent = errors.New("no pending content for user")

type finished struct {
	spoiler domain.Spoiler
	handle  expiry.Handle
}

// Registry is the spoiler store. The zero value is not usable; use New.
type Registry struct {
	logger        *zap.Logger
	defaultExpiry time.Duration
	timeNow       func() time.Time
	newID         func() string

	sessions   map[int64]domain.CreationStatus
	sessionMux sync.Mutex

	pending    map[int64]domain.Content
	pendingMux sync.Mutex

	index *expiry.Index

	spoilers   map[string]finished
	spoilerMux sync.RWMutex

	// spoiler id -> users who tapped a major spoiler once
	gate    map[string]map[int64]struct{}
	gateMux sync.Mutex
}

// New creates an empty registry. A non-positive defaultExpiry falls back to
// domain.DefaultExpiry.
func New(logger *zap.Logger, defaultExpiry time.Duration) *Registry {
	if defaultExpiry <= 0 {
		defaultExpiry = domain.DefaultExpiry
	}
	return &Registry{
		logger:        logger,
		defaultExpiry: defaultExpiry,
		timeNow:       time.Now,
		newID:         idgen.New,
		sessions:      make(map[int64]domain.CreationStatus),
		pending:       make(map[int64]domain.Content),
		index:         expiry.NewIndex(),
		spoilers:      make(map[string]finished),
		gate:          make(map[string]map[int64]struct{}),
	}
}

// SetTimeNow replaces the clock of the registry and its expiry index. Tests
// only; call before the registry is shared.
func (r *Registry) SetTimeNow(timeNow func() time.Time) {
	r.timeNow = timeNow
	r.index.SetTimeNow(timeNow)
}

// BeginCreation puts the user into WaitingForSpoiler and returns the status
// it replaced
func (r *Registry) BeginCreation(userID int64) (domain.CreationStatus, bool) {
	return r.setStatus(userID, domain.StatusWaitingForSpoiler)
}

// AwaitTitle puts the user into WaitingForTitle and returns the status it
// replaced
func (r *Registry) AwaitTitle(userID int64) (domain.CreationStatus, bool) {
	return r.setStatus(userID, domain.StatusWaitingForTitle)
}

func (r *Registry) setStatus(userID int64, status domain.CreationStatus) (domain.CreationStatus, bool) {
	r.sessionMux.Lock()
	defer r.sessionMux.Unlock()

	prev, ok := r.sessions[userID]
	r.sessions[userID] = status
	return prev, ok
}

// CancelCreation ends the user's creation session and drops any staged
// content. The second value is false if there was no session.
func (r *Registry) CancelCreation(userID int64) (domain.CreationStatus, bool) {
	r.sessionMux.Lock()
	prev, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.sessionMux.Unlock()

	r.pendingMux.Lock()
	delete(r.pending, userID)
	r.pendingMux.Unlock()

	return prev, ok
}

// IsAwaitingTitle reports whether the bot expects a title from the user
func (r *Registry) IsAwaitingTitle(userID int64) bool {
	return r.status(userID) == domain.StatusWaitingForTitle
}

// IsAwaitingContent reports whether the bot expects content from the user
func (r *Registry) IsAwaitingContent(userID int64) bool {
	return r.status(userID) == domain.StatusWaitingForSpoiler
}

func (r *Registry) status(userID int64) domain.CreationStatus {
	r.sessionMux.Lock()
	defer r.sessionMux.Unlock()
	return r.sessions[userID]
}

// StageContent stores content for the user until a title arrives,
// replacing anything staged before. It does not change the session status.
func (r *Registry) StageContent(userID int64, content domain.Content) {
	r.pendingMux.Lock()
	defer r.pendingMux.Unlock()
	r.pending[userID] = content
}

// Finalize turns the user's staged content into a spoiler titled with
// titleText and returns its id. The staged content is consumed.
//
// A title of "-" (after removing a duration suffix) means no title.
// customDuration overrides the default expiry when non-nil.
func (r *Registry) Finalize(userID int64, titleText string, customDuration *time.Duration) (string, error) {
	r.pendingMux.Lock()
	content, ok := r.pending[userID]
	delete(r.pending, userID)
	r.pendingMux.Unlock()

	if !ok {
		r.logger.Warn("Finalize called without pending content", zap.Int64("user_id", userID))
		return "", ErrNoPendingContent
	}

	s := r.Store(titleText, content, customDuration)
	return s.ID, nil
}

// Store creates a spoiler directly from content, without going through the
// creation session. Title handling and expiry match Finalize.
func (r *Registry) Store(titleText string, content domain.Content, customDuration *time.Duration) domain.Spoiler {
	expiresIn := r.defaultExpiry
	if customDuration != nil {
		expiresIn = *customDuration
	}

	s := domain.Spoiler{
		ID:        r.newID(),
		Title:     resolveTitle(titleText),
		Content:   content,
		ExpiresIn: expiresIn,
		ExpiresAt: r.timeNow().Add(expiresIn),
	}

	// The sweeper may pop a due entry as soon as it is scheduled, so
	// RemoveExpired must not observe the entry without the spoiler.
	r.spoilerMux.Lock()
	handle := r.index.Schedule(s.ID, expiresIn)
	r.spoilers[s.ID] = finished{spoiler: s, handle: handle}
	r.spoilerMux.Unlock()

	return s.Clone()
}

func resolveTitle(text string) *string {
	title := duration.StripSuffix(text)
	if title == domain.NoTitle {
		return nil
	}
	return &title
}

// Lookup returns a copy of the spoiler with the given id. It never changes
// state.
func (r *Registry) Lookup(id string) (domain.Spoiler, bool) {
	r.spoilerMux.RLock()
	f, ok := r.spoilers[id]
	r.spoilerMux.RUnlock()

	if !ok {
		return domain.Spoiler{}, false
	}
	return f.spoiler.Clone(), true
}

// TitleOf returns the spoiler's title, "" if it has none. The second value
// is false only if the spoiler does not exist.
func (r *Registry) TitleOf(id string) (string, bool) {
	s, ok := r.Lookup(id)
	if !ok {
		return "", false
	}
	return s.TitleOrEmpty(), true
}

// NeedsSecondTap flips the confirmation flag for (user, id) in one step.
// It returns true when the flag was absent (ask the user to tap again) and
// false when it was present (reveal now). Calls for one key alternate
// true, false, true, ...
func (r *Registry) NeedsSecondTap(userID int64, id string) bool {
	r.gateMux.Lock()
	defer r.gateMux.Unlock()

	return r.flipGate(userID, id)
}

// RevealTap is NeedsSecondTap for a live spoiler. found is false, and no
// flag is created, when the spoiler does not exist.
func (r *Registry) RevealTap(userID int64, id string) (needsSecondTap, found bool) {
	r.gateMux.Lock()
	defer r.gateMux.Unlock()

	r.spoilerMux.RLock()
	_, found = r.spoilers[id]
	r.spoilerMux.RUnlock()

	if !found {
		return false, false
	}
	return r.flipGate(userID, id), true
}

// flipGate must be called with gateMux held
func (r *Registry) flipGate(userID int64, id string) bool {
	users, ok := r.gate[id]
	if ok {
		if _, tapped := users[userID]; tapped {
			delete(users, userID)
			if len(users) == 0 {
				delete(r.gate, id)
			}
			return false
		}
	} else {
		users = make(map[int64]struct{})
		r.gate[id] = users
	}

	users[userID] = struct{}{}
	return true
}

// RemoveExpired deletes the spoiler and its confirmation flags. Removing an
// absent id is a no-op.
func (r *Registry) RemoveExpired(id string) {
	r.spoilerMux.Lock()
	f, ok := r.spoilers[id]
	delete(r.spoilers, id)
	r.spoilerMux.Unlock()

	if ok {
		r.index.Cancel(f.handle)
	}

	r.gateMux.Lock()
	delete(r.gate, id)
	r.gateMux.Unlock()
}

// PollExpired pops the next spoiler id whose deadline has passed
func (r *Registry) PollExpired() (string, bool) {
	return r.index.PollExpired()
}

// NextDeadline returns the earliest pending expiry
func (r *Registry) NextDeadline() (time.Time, bool) {
	return r.index.NextDeadline()
}

// Wakeup fires when a spoiler with a new earliest deadline is stored
func (r *Registry) Wakeup() <-chan struct{} {
	return r.index.Wakeup()
}

// Len returns the number of live spoilers
func (r *Registry) Len() int {
	r.spoilerMux.RLock()
	defer r.spoilerMux.RUnlock()
	return len(r.spoilers)
}
