package voice_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/internal/dedup"
	"github.com/dgnsrekt/finvox/voice"
	"github.com/dgnsrekt/finvox/voice/engines/mock"
)

type announceFixture struct {
	player   *audio.MockPlayer
	engine   *mock.Engine
	queue    *voice.Queue
	tracker  *dedup.Tracker
	announce *voice.Announcer
}

func newAnnounceFixture(t *testing.T, mutate func(*voice.Config)) *announceFixture {
	t.Helper()
	player := audio.NewMockPlayer()
	player.SetPlayDuration(time.Millisecond)
	engine := mock.New()
	if err := engine.Initialize(voice.EngineConfig{Locale: "en-US"}); err != nil {
		t.Fatalf("engine init: %v", err)
	}
	ch := voice.NewChannel(player, engine)
	q := voice.NewQueue(ch,
		voice.WithPollInterval(2*time.Millisecond),
		voice.WithGracePause(5*time.Millisecond))
	tracker := dedup.NewTracker(dedup.NewMemoryStore(), dedup.NewMemoryStore())

	cfg := voice.DefaultConfig()
	cfg.Engine = "mock"
	cfg.AlertsPerMinute = 60
	if mutate != nil {
		mutate(&cfg)
	}

	morning := func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}
	a := voice.NewAnnouncer(q, ch, tracker, cfg, voice.WithAnnouncerClock(morning))
	return &announceFixture{player: player, engine: engine, queue: q, tracker: tracker, announce: a}
}

func TestGreetingSpokenOncePerSession(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)
	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 1 {
		t.Fatalf("greeting spoken %d times, want 1", len(spoken))
	}
	if !strings.HasPrefix(spoken[0], "Good morning, Alice.") {
		t.Errorf("unexpected greeting: %q", spoken[0])
	}
}

func TestFirstGreetingOfDayReadsBalance(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 1 {
		t.Fatalf("greeting spoken %d times, want 1", len(spoken))
	}
	if !strings.Contains(spoken[0], "dollars") {
		t.Errorf("first greeting of the day should read the balance, got %q", spoken[0])
	}

	// A later tab session on the same day greets without the balance.
	f.tracker.ClearSession()
	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)

	spoken = f.engine.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("greeting spoken %d times, want 2", len(spoken))
	}
	if strings.Contains(spoken[1], "dollars") {
		t.Errorf("repeat greeting should omit the balance, got %q", spoken[1])
	}
}

func TestGreetingFlagsMarkedOnlyAfterSpeech(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	if f.tracker.SessionAnnounced("dashboard_greeting") {
		t.Fatal("flag set before anything was announced")
	}
	f.announce.AnnounceGreeting("Alice", 10)
	waitDrained(t, f.queue)

	if !f.tracker.SessionAnnounced("dashboard_greeting") {
		t.Error("session flag not set after greeting completed")
	}
	if !f.tracker.GreetedToday() {
		t.Error("daily flag not set after first greeting of the day")
	}
}

func TestFailedGreetingCanRetry(t *testing.T) {
	f := newAnnounceFixture(t, nil)
	f.engine.SetFailure(errors.New("engine exploded"))

	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)

	if f.tracker.SessionAnnounced("dashboard_greeting") {
		t.Error("session flag set even though nothing was spoken")
	}
	if f.tracker.GreetedToday() {
		t.Error("daily flag set even though nothing was spoken")
	}

	// The engine recovers; the greeting runs as if it were the first.
	f.engine.ClearFailure()
	f.announce.AnnounceGreeting("Alice", 1234.56)
	waitDrained(t, f.queue)

	if got := len(f.player.Played()); got != 1 {
		t.Fatalf("retry played %d clips, want 1", got)
	}
	spoken := f.engine.Spoken()
	if last := spoken[len(spoken)-1]; !strings.Contains(last, "dollars") {
		t.Errorf("retried greeting should still read the balance, got %q", last)
	}
}

func TestTransactionAnnouncedEveryTime(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	f.announce.AnnounceTransaction("Deposit", 50)
	f.announce.AnnounceTransaction("Deposit", 50)
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("transactions spoken %d times, want 2", len(spoken))
	}
	if !strings.Contains(spoken[0], "Deposit of fifty dollars") {
		t.Errorf("unexpected transaction text: %q", spoken[0])
	}
}

func TestPaymentReminderDedupedPerPayee(t *testing.T) {
	f := newAnnounceFixture(t, nil)
	due := time.Date(2026, 3, 10, 15, 15, 0, 0, time.UTC)

	f.announce.AnnouncePaymentReminder("Rent", 850, due)
	waitDrained(t, f.queue)
	f.announce.AnnouncePaymentReminder("Rent", 850, due)
	f.announce.AnnouncePaymentReminder("Electric", 120, time.Time{})
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("reminders spoken %d times, want 2", len(spoken))
	}
	if !strings.Contains(spoken[0], "Rent") || !strings.Contains(spoken[0], "quarter past three") {
		t.Errorf("unexpected reminder with due time: %q", spoken[0])
	}
	if !strings.Contains(spoken[1], "Electric") || !strings.Contains(spoken[1], "due today") {
		t.Errorf("unexpected reminder without due time: %q", spoken[1])
	}
}

func TestRoutineAlertsRateLimited(t *testing.T) {
	f := newAnnounceFixture(t, func(cfg *voice.Config) {
		cfg.AlertsPerMinute = 1
	})

	f.announce.AnnounceRoutineAlert("Sync complete")
	f.announce.AnnounceRoutineAlert("Sync complete again")
	waitDrained(t, f.queue)

	if got := len(f.engine.Spoken()); got != 1 {
		t.Errorf("rate-limited alerts spoken %d times, want 1", got)
	}
}

func TestLoginJingleOncePerSession(t *testing.T) {
	f := newAnnounceFixture(t, nil)
	clip := &audio.Clip{Name: "jingle", PCM: make([]byte, 64), SampleRate: audio.SampleRate, Channels: audio.ChannelCount}

	f.announce.PlayLoginJingle(clip)
	f.announce.PlayLoginJingle(clip)

	if got := len(f.player.Played()); got != 1 {
		t.Errorf("jingle played %d times, want 1", got)
	}
}

func TestDisableSilencesAndReenableRearmsSession(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	f.announce.AnnounceGreeting("Alice", 10)
	waitDrained(t, f.queue)

	f.announce.SetEnabled(false)
	f.announce.AnnounceGreeting("Alice", 10)
	waitDrained(t, f.queue)
	if got := len(f.engine.Spoken()); got != 1 {
		t.Fatalf("disabled announcer spoke, total=%d", got)
	}

	// Re-enabling clears the per-feature session flags so the greeting can
	// run once more, but the daily flag still suppresses the balance.
	f.announce.SetEnabled(true)
	f.announce.AnnounceGreeting("Alice", 10)
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 2 {
		t.Fatalf("greeting after re-enable spoken %d times total, want 2", len(spoken))
	}
	if strings.Contains(spoken[1], "dollars") {
		t.Errorf("re-enabled greeting should not re-read the balance, got %q", spoken[1])
	}
}

func TestLogoutClearsSessionKeepsDaily(t *testing.T) {
	f := newAnnounceFixture(t, nil)

	f.announce.AnnounceGreeting("Alice", 10)
	waitDrained(t, f.queue)
	f.announce.Logout()

	if f.tracker.SessionAnnounced("dashboard_greeting") {
		t.Error("session flag survived logout")
	}
	if !f.tracker.GreetedToday() {
		t.Error("daily flag lost on logout")
	}
}

func TestPortugueseGreeting(t *testing.T) {
	f := newAnnounceFixture(t, func(cfg *voice.Config) {
		cfg.Locale = "pt-BR"
	})

	f.announce.AnnounceGreeting("Maria", 100)
	waitDrained(t, f.queue)

	spoken := f.engine.Spoken()
	if len(spoken) != 1 {
		t.Fatalf("greeting spoken %d times, want 1", len(spoken))
	}
	if !strings.HasPrefix(spoken[0], "Bom dia, Maria.") {
		t.Errorf("unexpected Portuguese greeting: %q", spoken[0])
	}
	if !strings.Contains(spoken[0], "reais") {
		t.Errorf("Portuguese greeting should read the balance in reais, got %q", spoken[0])
	}
}
