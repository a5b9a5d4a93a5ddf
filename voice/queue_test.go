package voice_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/voice"
	"github.com/dgnsrekt/finvox/voice/engines/mock"
)

func newTestQueue(t *testing.T) (*audio.MockPlayer, *mock.Engine, *voice.Queue) {
	t.Helper()
	player := audio.NewMockPlayer()
	player.SetPlayDuration(5 * time.Millisecond)
	engine := mock.New()
	if err := engine.Initialize(voice.EngineConfig{}); err != nil {
		t.Fatalf("engine init: %v", err)
	}
	ch := voice.NewChannel(player, engine)
	q := voice.NewQueue(ch,
		voice.WithPollInterval(2*time.Millisecond),
		voice.WithGracePause(20*time.Millisecond))
	return player, engine, q
}

func waitDrained(t *testing.T, q *voice.Queue) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for q.IsVoicePlaying() {
		if time.Now().After(deadline) {
			t.Fatal("queue never drained")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQueueSpeaksInPriorityOrder(t *testing.T) {
	_, engine, q := newTestQueue(t)

	for _, item := range []struct {
		text     string
		priority int
	}{
		{"a", 1}, {"b", 5}, {"c", 3}, {"d", 5},
	} {
		if _, err := q.Enqueue(item.text, item.priority, nil); err != nil {
			t.Fatalf("enqueue %q: %v", item.text, err)
		}
	}
	waitDrained(t, q)

	want := []string{"b", "d", "c", "a"}
	if got := engine.Spoken(); !reflect.DeepEqual(got, want) {
		t.Errorf("speak order = %v, want %v", got, want)
	}
}

func TestQueueRejectsNegativePriority(t *testing.T) {
	_, _, q := newTestQueue(t)

	if _, err := q.Enqueue("whoops", -1, nil); !errors.Is(err, voice.ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
	if q.Len() != 0 {
		t.Error("rejected utterance was queued anyway")
	}
}

func TestQueueInvokesCompletionCallbacks(t *testing.T) {
	_, _, q := newTestQueue(t)

	var mu sync.Mutex
	var order []string
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	q.Enqueue("low", 1, record("low"))
	q.Enqueue("high", 9, record("high"))
	waitDrained(t, q)

	mu.Lock()
	defer mu.Unlock()
	if want := []string{"high", "low"}; !reflect.DeepEqual(order, want) {
		t.Errorf("callback order = %v, want %v", order, want)
	}
}

func TestQueueSkipsCallbackWhenSpeechFails(t *testing.T) {
	_, engine, q := newTestQueue(t)
	engine.SetFailure(errors.New("engine exploded"))

	var mu sync.Mutex
	called := false
	q.Enqueue("greeting", 5, func() {
		mu.Lock()
		called = true
		mu.Unlock()
	})
	waitDrained(t, q)

	mu.Lock()
	defer mu.Unlock()
	if called {
		t.Error("completion callback ran for an utterance that was never spoken")
	}
	if got := q.Stats().Spoken; got != 0 {
		t.Errorf("Spoken = %d after failed synthesis, want 0", got)
	}
}

func TestQueueStopAllVoiceIsTotal(t *testing.T) {
	_, engine, q := newTestQueue(t)

	// Stop before the grace pause elapses so nothing has spoken yet.
	q.Enqueue("one", 1, nil)
	q.Enqueue("two", 2, nil)
	q.Enqueue("three", 3, nil)
	q.StopAllVoice()

	waitDrained(t, q)
	if got := engine.CallCount(); got != 0 {
		t.Errorf("%d utterances spoken after total cancellation", got)
	}
	if q.Len() != 0 {
		t.Errorf("queue still holds %d utterances after stop", q.Len())
	}

	// The queue accepts and drains new work afterward.
	q.Enqueue("fresh", 1, nil)
	waitDrained(t, q)
	if got := engine.Spoken(); len(got) != 1 || got[0] != "fresh" {
		t.Errorf("post-stop speak = %v, want [fresh]", got)
	}
}

func TestQueueNeverOverlapsPlayback(t *testing.T) {
	player, _, q := newTestQueue(t)
	player.SetPlayDuration(15 * time.Millisecond)

	for i := 0; i < 5; i++ {
		q.Enqueue("item", 1, nil)
	}

	// Sample IsPlaying from the player's perspective; the channel serializes
	// everything, so the mock is either idle or playing exactly one clip.
	done := make(chan struct{})
	go func() {
		defer close(done)
		waitDrained(t, q)
	}()
	for {
		select {
		case <-done:
			if got := len(player.Played()); got != 5 {
				t.Errorf("expected 5 playbacks, got %d", got)
			}
			return
		default:
			player.IsPlaying() // must never panic or deadlock mid-drain
			time.Sleep(time.Millisecond)
		}
	}
}

func TestQueueStats(t *testing.T) {
	_, _, q := newTestQueue(t)

	q.Enqueue("one", 1, nil)
	q.Enqueue("two", 2, nil)
	waitDrained(t, q)
	q.Enqueue("three", 3, nil)
	q.StopAllVoice()

	stats := q.Stats()
	if stats.Enqueued != 3 {
		t.Errorf("Enqueued = %d, want 3", stats.Enqueued)
	}
	if stats.Spoken != 2 {
		t.Errorf("Spoken = %d, want 2", stats.Spoken)
	}
	if stats.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", stats.Dropped)
	}
	if stats.Peak < 2 {
		t.Errorf("Peak = %d, want >= 2", stats.Peak)
	}
}

func TestGreetingThenReminderScenario(t *testing.T) {
	_, engine, q := newTestQueue(t)

	q.Enqueue("Good morning, Alice.", 10, nil)
	time.Sleep(10 * time.Millisecond)
	q.Enqueue("Payment reminder for Rent.", 1, nil)
	waitDrained(t, q)

	want := []string{"Good morning, Alice.", "Payment reminder for Rent."}
	if got := engine.Spoken(); !reflect.DeepEqual(got, want) {
		t.Errorf("speak order = %v, want %v", got, want)
	}
}
