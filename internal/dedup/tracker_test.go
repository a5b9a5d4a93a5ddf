package dedup

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestTracker(t *testing.T, opts ...TrackerOption) *Tracker {
	t.Helper()
	durable, err := NewFileStore(filepath.Join(t.TempDir(), "flags.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewTracker(NewMemoryStore(), durable, opts...)
}

func TestSessionFlagIndependentFromDaily(t *testing.T) {
	tr := newTestTracker(t)

	tr.MarkSessionAnnounced("dashboard")
	if !tr.SessionAnnounced("dashboard") {
		t.Fatal("session flag not set")
	}
	if tr.GreetedToday() {
		t.Error("session flag leaked into daily flag")
	}

	tr.MarkGreetedToday()
	if !tr.GreetedToday() {
		t.Fatal("daily flag not set")
	}
	if tr.SessionAnnounced("goals") {
		t.Error("daily flag leaked into session flags")
	}
}

func TestClearSessionLeavesDailyFlag(t *testing.T) {
	tr := newTestTracker(t)

	tr.MarkSessionAnnounced("dashboard")
	tr.MarkLoginClipPlayed()
	tr.MarkGreetedToday()

	tr.ClearSession()

	if tr.SessionAnnounced("dashboard") {
		t.Error("session flag survived logout")
	}
	if tr.LoginClipPlayed() {
		t.Error("login clip flag survived logout")
	}
	if !tr.GreetedToday() {
		t.Error("daily flag must survive logout")
	}
}

func TestDailyFlagRearmsOnNewDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)
	tr := newTestTracker(t, WithClock(func() time.Time { return now }))

	tr.MarkGreetedToday()
	if !tr.GreetedToday() {
		t.Fatal("daily flag not set")
	}

	now = now.Add(4 * time.Hour) // crosses midnight
	if tr.GreetedToday() {
		t.Error("yesterday's stamp must not count today")
	}
}

func TestResetForReenableKeepsOnceFlags(t *testing.T) {
	tr := newTestTracker(t)

	tr.MarkSessionAnnounced("dashboard")
	tr.MarkSessionAnnounced("goals")
	tr.MarkLoginClipPlayed()
	tr.MarkGreetedToday()

	tr.ResetForReenable()

	if tr.SessionAnnounced("dashboard") || tr.SessionAnnounced("goals") {
		t.Error("feature flags should clear on re-enable")
	}
	if !tr.LoginClipPlayed() {
		t.Error("login clip flag must survive re-enable")
	}
	if !tr.GreetedToday() {
		t.Error("daily flag must survive re-enable")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := first.Set(keyDailyGreet, "2024-03-10"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := second.Get(keyDailyGreet)
	if !ok || got != "2024-03-10" {
		t.Errorf("reopened store returned (%q, %v), want (\"2024-03-10\", true)", got, ok)
	}
}

func TestFileStoreFlushLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set("b", "2"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "flags.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("flush left extra files behind: %v", names)
	}
}
