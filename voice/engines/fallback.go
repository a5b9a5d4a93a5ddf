package engines

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/voice"
)

// FallbackEngine wraps a primary engine with automatic fallback to a
// secondary engine when the primary fails consistently.
type FallbackEngine struct {
	primary     voice.Engine
	fallback    voice.Engine
	maxFailures int

	mu            sync.Mutex
	failures      int
	usingFallback bool
}

// NewFallbackEngine creates an engine with automatic fallback capability.
func NewFallbackEngine(primary, fallback voice.Engine, maxFailures int) *FallbackEngine {
	return &FallbackEngine{
		primary:     primary,
		fallback:    fallback,
		maxFailures: maxFailures,
	}
}

// Name identifies the currently active engine.
func (f *FallbackEngine) Name() string {
	return f.active().Name()
}

func (f *FallbackEngine) active() voice.Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.usingFallback {
		return f.fallback
	}
	return f.primary
}

// Initialize initializes both engines. A primary that fails to initialize
// switches to the fallback immediately.
func (f *FallbackEngine) Initialize(config voice.EngineConfig) error {
	primaryErr := f.primary.Initialize(config)
	if primaryErr != nil {
		log.Warn("primary speech engine failed to initialize", "engine", f.primary.Name(), "err", primaryErr)
	}

	fallbackErr := f.fallback.Initialize(config)
	if fallbackErr != nil && primaryErr != nil {
		return fmt.Errorf("both engines failed: primary=%v, fallback=%v", primaryErr, fallbackErr)
	}

	if primaryErr != nil && fallbackErr == nil {
		f.mu.Lock()
		f.usingFallback = true
		f.mu.Unlock()
	}
	return nil
}

// Synthesize uses the active engine, switching to the fallback after the
// primary has failed maxFailures times in a row. A non-recoverable failure
// switches immediately; retrying a shut-down engine is pointless.
func (f *FallbackEngine) Synthesize(text string) (*audio.Clip, error) {
	f.mu.Lock()
	usingFallback := f.usingFallback
	f.mu.Unlock()

	if usingFallback {
		return f.fallback.Synthesize(text)
	}

	clip, err := f.primary.Synthesize(text)
	if err == nil {
		f.mu.Lock()
		f.failures = 0
		f.mu.Unlock()
		return clip, nil
	}

	f.mu.Lock()
	f.failures++
	failures := f.failures
	switchOver := failures >= f.maxFailures || !voice.IsRecoverableError(err)
	if switchOver {
		f.usingFallback = true
	}
	f.mu.Unlock()

	if !switchOver {
		log.Warn("speech engine failed", "engine", f.primary.Name(),
			"attempt", failures, "max", f.maxFailures, "err", err)
		return nil, err
	}

	log.Warn("switching to fallback speech engine",
		"primary", f.primary.Name(), "fallback", f.fallback.Name(), "failures", failures)
	return f.fallback.Synthesize(text)
}

// Voices returns the active engine's voice inventory.
func (f *FallbackEngine) Voices() []voice.Voice {
	return f.active().Voices()
}

// SetVoice sets the voice on both engines.
func (f *FallbackEngine) SetVoice(v voice.Voice) error {
	primaryErr := f.primary.SetVoice(v)
	fallbackErr := f.fallback.SetVoice(v)
	if f.active() == f.fallback {
		return fallbackErr
	}
	return primaryErr
}

// CurrentVoice returns the active engine's voice.
func (f *FallbackEngine) CurrentVoice() voice.Voice {
	return f.active().CurrentVoice()
}

// IsAvailable reports whether either engine is usable.
func (f *FallbackEngine) IsAvailable() bool {
	return f.primary.IsAvailable() || f.fallback.IsAvailable()
}

// Shutdown shuts down both engines.
func (f *FallbackEngine) Shutdown() error {
	primaryErr := f.primary.Shutdown()
	fallbackErr := f.fallback.Shutdown()
	if primaryErr != nil {
		return primaryErr
	}
	return fallbackErr
}

// Reset switches back to the primary engine and clears the failure count.
func (f *FallbackEngine) Reset() {
	f.mu.Lock()
	f.failures = 0
	f.usingFallback = false
	f.mu.Unlock()
}
