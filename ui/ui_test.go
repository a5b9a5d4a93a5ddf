package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/internal/dedup"
	"github.com/dgnsrekt/finvox/voice"
	"github.com/dgnsrekt/finvox/voice/engines/mock"
)

func newTestModel(t *testing.T) (Model, *mock.Engine, *voice.Queue) {
	t.Helper()
	player := audio.NewMockPlayer()
	player.SetPlayDuration(time.Millisecond)
	engine := mock.New()
	if err := engine.Initialize(voice.EngineConfig{}); err != nil {
		t.Fatalf("engine init: %v", err)
	}
	ch := voice.NewChannel(player, engine)
	q := voice.NewQueue(ch,
		voice.WithPollInterval(2*time.Millisecond),
		voice.WithGracePause(2*time.Millisecond))
	tracker := dedup.NewTracker(dedup.NewMemoryStore(), dedup.NewMemoryStore())

	cfg := voice.DefaultConfig()
	cfg.Engine = "mock"
	announcer := voice.NewAnnouncer(q, ch, tracker, cfg)

	m := NewModel(Config{UserName: "Alice", GlamourEnabled: false}, announcer, q)
	return m, engine, q
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func drained(t *testing.T, q *voice.Queue) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for q.IsVoicePlaying() {
		if time.Now().After(deadline) {
			t.Fatal("queue never drained")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestKeyTriggersAnnouncement(t *testing.T) {
	m, engine, q := newTestModel(t)

	next, _ := m.Update(keyPress('t'))
	m = next.(Model)
	drained(t, q)

	spoken := engine.Spoken()
	if len(spoken) != 1 || !strings.Contains(spoken[0], "Deposit") {
		t.Errorf("transaction key spoke %v", spoken)
	}
}

func TestMuteKeySilencesAnnouncements(t *testing.T) {
	m, engine, q := newTestModel(t)

	next, _ := m.Update(keyPress('v')) // mute
	m = next.(Model)
	next, _ = m.Update(keyPress('t'))
	m = next.(Model)
	drained(t, q)

	if got := engine.CallCount(); got != 0 {
		t.Errorf("muted dashboard still spoke %d times", got)
	}
	if !strings.Contains(m.View(), "muted") {
		t.Error("view does not show the muted state")
	}
}

func TestViewShowsStats(t *testing.T) {
	m, _, q := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	next, _ = m.Update(keyPress('t'))
	m = next.(Model)
	drained(t, q)

	view := m.View()
	for _, want := range []string{"FinVox", "spoken", "queued", "last:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuitStopsVoice(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not produce tea.Quit")
	}
}
