package voice

import (
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	// DefaultPollInterval is how often the drain loop checks the channel
	// for idleness before speaking the next utterance.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultGracePause is the silence inserted between the channel going
	// idle and the next utterance starting. Back-to-back announcements
	// sound rushed without it.
	DefaultGracePause = 300 * time.Millisecond
)

// QueueStats is a snapshot of queue activity counters.
type QueueStats struct {
	Enqueued int // total utterances accepted
	Spoken   int // utterances spoken to completion
	Dropped  int // utterances discarded by StopAllVoice
	Peak     int // highest pending depth observed
}

// Queue serializes speech requests onto the Channel in priority order.
// Higher priority speaks first; equal priorities speak in arrival order.
// A single drain goroutine runs while the queue is non-empty and idles
// away once drained.
type Queue struct {
	channel *Channel

	pollInterval time.Duration
	gracePause   time.Duration

	mu       sync.Mutex
	pending  []*Utterance
	draining bool
	gen      uint64 // bumped by StopAllVoice to cancel an active drain
	stats    QueueStats
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithPollInterval sets how often the drain loop polls for channel idleness.
func WithPollInterval(d time.Duration) QueueOption {
	return func(q *Queue) { q.pollInterval = d }
}

// WithGracePause sets the silence between consecutive utterances.
func WithGracePause(d time.Duration) QueueOption {
	return func(q *Queue) { q.gracePause = d }
}

// NewQueue creates a queue draining onto the given channel.
func NewQueue(channel *Channel, opts ...QueueOption) *Queue {
	q := &Queue{
		channel:      channel,
		pollInterval: DefaultPollInterval,
		gracePause:   DefaultGracePause,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue adds text to the queue and starts the drain loop if it is not
// already running. onComplete, if non-nil, is invoked only after the
// utterance has been spoken to completion; failed or interrupted playback
// skips it. Priority must be non-negative; zero is valid and sorts last.
func (q *Queue) Enqueue(text string, priority int, onComplete func()) (*Utterance, error) {
	if priority < 0 {
		return nil, ErrInvalidPriority
	}

	q.mu.Lock()
	u := &Utterance{
		ID:         uuid.New(),
		Text:       text,
		Priority:   priority,
		OnComplete: onComplete,
		EnqueuedAt: time.Now(),
	}
	q.pending = append(q.pending, u)
	// Stable sort keeps arrival order within a priority level.
	sort.SliceStable(q.pending, func(i, j int) bool {
		return q.pending[i].Priority > q.pending[j].Priority
	})
	q.stats.Enqueued++
	if len(q.pending) > q.stats.Peak {
		q.stats.Peak = len(q.pending)
	}
	start := !q.draining
	if start {
		q.draining = true
	}
	gen := q.gen
	q.mu.Unlock()

	log.Debug("utterance queued", "id", u.ID, "priority", priority)
	if start {
		go q.drain(gen)
	}
	return u, nil
}

// drain speaks pending utterances one at a time until the queue empties or
// StopAllVoice cancels this generation. The highest-priority utterance is
// claimed only after the idle wait and grace pause, so work enqueued while
// something else is audible still sorts ahead of lower-priority items.
func (q *Queue) drain(gen uint64) {
	for {
		// Let whatever is playing finish, then leave a beat of silence
		// so consecutive announcements do not run together.
		for q.channel.IsPlaying() {
			if q.canceled(gen) {
				return
			}
			time.Sleep(q.pollInterval)
		}
		time.Sleep(q.gracePause)

		q.mu.Lock()
		if q.gen != gen {
			q.mu.Unlock()
			return
		}
		if len(q.pending) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		u := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		log.Debug("speaking utterance", "id", u.ID, "priority", u.Priority, "waited", time.Since(u.EnqueuedAt))
		if !q.channel.Speak(u.Text) {
			continue
		}

		q.mu.Lock()
		q.stats.Spoken++
		q.mu.Unlock()

		if u.OnComplete != nil {
			u.OnComplete()
		}
	}
}

func (q *Queue) canceled(gen uint64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gen != gen
}

// StopAllVoice discards every pending utterance, cancels the drain loop and
// silences the channel. The queue accepts new work immediately afterward.
func (q *Queue) StopAllVoice() {
	q.mu.Lock()
	q.gen++
	q.stats.Dropped += len(q.pending)
	q.pending = nil
	q.draining = false
	q.mu.Unlock()

	q.channel.StopAll()
	log.Debug("voice queue stopped")
}

// IsVoicePlaying reports whether anything is audible or queued to become so.
func (q *Queue) IsVoicePlaying() bool {
	q.mu.Lock()
	pending := len(q.pending) > 0 || q.draining
	q.mu.Unlock()
	return pending || q.channel.IsPlaying()
}

// Len returns the number of utterances waiting to be spoken.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stats returns a snapshot of the queue's activity counters.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}
