// Package mock provides a mock speech engine for testing.
package mock

import (
	"sync"
	"time"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/voice"
)

// Engine implements the voice.Engine interface for testing. It produces
// silent PCM sized to the estimated speaking duration of the text and
// records every synthesis request.
type Engine struct {
	mu sync.Mutex

	config      voice.EngineConfig
	delay       time.Duration // simulated synthesis delay
	wpm         int
	activeVoice voice.Voice

	// Test controls
	shouldFail   bool
	failureError error

	available bool
	spoken    []string
	callCount int
}

// New creates a new mock speech engine.
func New() *Engine {
	return &Engine{
		wpm:       150,
		available: true,
		activeVoice: voice.Voice{
			ID:       "mock-voice-1",
			Name:     "Mock Voice",
			Language: "en-US",
		},
	}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "mock" }

// Initialize prepares the mock engine.
func (e *Engine) Initialize(config voice.EngineConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = config
	return nil
}

// Synthesize simulates speech synthesis, returning silence sized to the
// estimated speaking duration of the text.
func (e *Engine) Synthesize(text string) (*audio.Clip, error) {
	e.mu.Lock()
	e.callCount++
	e.spoken = append(e.spoken, text)
	fail := e.shouldFail
	failErr := e.failureError
	delay := e.delay
	wpm := e.wpm
	e.mu.Unlock()

	if fail {
		return nil, failErr
	}
	if delay > 0 {
		time.Sleep(delay)
	}

	duration := estimateDuration(text, wpm)
	samples := int(duration.Seconds() * float64(audio.SampleRate))
	return &audio.Clip{
		Name:       "mock",
		PCM:        make([]byte, samples*2), // 16-bit silence
		SampleRate: audio.SampleRate,
		Channels:   audio.ChannelCount,
	}, nil
}

// Voices returns the mock voice inventory.
func (e *Engine) Voices() []voice.Voice {
	return []voice.Voice{
		{ID: "mock-voice-1", Name: "Mock Voice 1", Language: "en-US"},
		{ID: "mock-voice-2", Name: "Mock Voice 2", Language: "pt-BR"},
	}
}

// SetVoice sets the active voice.
func (e *Engine) SetVoice(v voice.Voice) error {
	for _, known := range e.Voices() {
		if known.ID == v.ID {
			e.mu.Lock()
			e.activeVoice = known
			e.mu.Unlock()
			return nil
		}
	}
	return voice.ErrVoiceNotFound
}

// CurrentVoice returns the active voice.
func (e *Engine) CurrentVoice() voice.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeVoice
}

// IsAvailable returns the mock availability state.
func (e *Engine) IsAvailable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available
}

// Shutdown simulates engine shutdown.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.available = false
	return nil
}

// Test control methods

// SetDelay sets the simulated synthesis delay.
func (e *Engine) SetDelay(delay time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.delay = delay
}

// SetAvailable overrides the availability state.
func (e *Engine) SetAvailable(available bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.available = available
}

// SetFailure configures the engine to fail with the given error.
func (e *Engine) SetFailure(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = true
	e.failureError = err
}

// ClearFailure resets the engine to normal operation.
func (e *Engine) ClearFailure() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shouldFail = false
	e.failureError = nil
}

// CallCount returns the number of Synthesize calls.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// Spoken returns every text passed to Synthesize, in order.
func (e *Engine) Spoken() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.spoken))
	copy(out, e.spoken)
	return out
}

// estimateDuration estimates speaking duration for text. Rough: 5 chars per
// word at the configured pace.
func estimateDuration(text string, wpm int) time.Duration {
	words := len(text) / 5
	if words < 1 {
		words = 1
	}
	seconds := float64(words) * 60.0 / float64(wpm)
	return time.Duration(seconds * float64(time.Second))
}
