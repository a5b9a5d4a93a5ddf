// Package voice coordinates everything the application speaks. A single
// Channel owns the audio output, a Queue serializes announcement requests in
// priority order, and the Announcer is the per-feature entry point that
// composes messages, consults the dedup tracker and submits speech.
package voice

import (
	"time"

	"github.com/google/uuid"

	"github.com/dgnsrekt/finvox/internal/audio"
)

// Engine defines the interface for speech synthesis backends.
type Engine interface {
	// Name identifies the engine ("espeak", "mock").
	Name() string

	// Initialize prepares the engine with the given configuration.
	Initialize(config EngineConfig) error

	// Synthesize converts text to a playable clip.
	Synthesize(text string) (*audio.Clip, error)

	// IsAvailable reports whether the engine is ready for use.
	IsAvailable() bool

	// Voices returns the engine's voice inventory.
	Voices() []Voice

	// SetVoice selects the active voice.
	SetVoice(voice Voice) error

	// CurrentVoice returns the active voice.
	CurrentVoice() Voice

	// Shutdown releases engine resources.
	Shutdown() error
}

// EngineConfig holds configuration shared by synthesis engines.
type EngineConfig struct {
	Voice  string  // voice identifier
	Locale string  // BCP 47 tag, informs default voice selection
	Rate   float32 // speech rate multiplier (1.0 = normal)
	Volume float32 // volume level (0.0 to 2.0)
}

// Voice describes one synthesis voice.
type Voice struct {
	ID       string
	Name     string
	Language string
}

// Announcement priorities. Arbitrary non-negative values are accepted;
// these are the ones the facade uses.
const (
	PriorityLow    = 1
	PriorityNormal = 5
	PriorityHigh   = 10
)

// Utterance is one unit of text requested to be spoken. Created at request
// time, immutable, consumed exactly once by the queue drain loop.
type Utterance struct {
	ID         uuid.UUID
	Text       string
	Priority   int
	OnComplete func()
	EnqueuedAt time.Time
}
