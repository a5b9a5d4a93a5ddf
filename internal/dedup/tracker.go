package dedup

import (
	"strings"
	"time"
)

// Flag keys. The announced: namespace holds per-feature session flags; the
// other two are single fixed keys.
const (
	announcedPrefix = "announced:"
	keyDailyGreet   = "daily_greeting_date"
	keyLoginClip    = "login_clip_played"
)

const dateLayout = "2006-01-02"

// Tracker answers "has this announcement already been made" across three
// independent scopes: per feature within the session, once per calendar day,
// and once per login for the login clip. Flags are only marked by callers
// after a successful announcement, so an interrupted one may retry.
type Tracker struct {
	session Store
	durable Store
	now     func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the time source, used by tests to cross a day boundary.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker builds a tracker over a session store and a durable store.
func NewTracker(session, durable Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		session: session,
		durable: durable,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SessionAnnounced reports whether the named feature already announced
// itself this session.
func (t *Tracker) SessionAnnounced(feature string) bool {
	_, ok := t.session.Get(announcedPrefix + feature)
	return ok
}

// MarkSessionAnnounced records a completed announcement for the feature.
func (t *Tracker) MarkSessionAnnounced(feature string) {
	_ = t.session.Set(announcedPrefix+feature, "1")
}

// GreetedToday reports whether the daily greeting already ran on the current
// calendar day. A stored date from any other day counts as not greeted.
func (t *Tracker) GreetedToday() bool {
	stored, ok := t.durable.Get(keyDailyGreet)
	if !ok {
		return false
	}
	return stored == t.now().Format(dateLayout)
}

// MarkGreetedToday stamps the daily greeting with today's date.
func (t *Tracker) MarkGreetedToday() {
	_ = t.durable.Set(keyDailyGreet, t.now().Format(dateLayout))
}

// LoginClipPlayed reports whether the one-shot login clip already played
// this session.
func (t *Tracker) LoginClipPlayed() bool {
	_, ok := t.session.Get(keyLoginClip)
	return ok
}

// MarkLoginClipPlayed records the login clip as played for this session.
func (t *Tracker) MarkLoginClipPlayed() {
	_ = t.session.Set(keyLoginClip, "1")
}

// ClearSession drops every session-scoped flag on logout. The daily flag is
// deliberately durable across sessions and is left alone.
func (t *Tracker) ClearSession() {
	_ = t.session.Clear()
}

// ResetForReenable clears only the per-feature announcement flags, so a
// page mount after the user re-enables voice can announce once more. The
// daily and login-clip flags keep their once-per-day / once-per-login
// meaning and are not touched.
func (t *Tracker) ResetForReenable() {
	for _, key := range t.session.Keys() {
		if strings.HasPrefix(key, announcedPrefix) {
			_ = t.session.Delete(key)
		}
	}
}
