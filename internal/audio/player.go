// Package audio provides PCM playback for the voice engine. All sound in
// the application leaves through a single Player so exclusivity can be
// enforced one layer up.
package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// Default output format. Synthesis engines are expected to produce mono
// 16-bit PCM at this rate.
const (
	SampleRate   = 22050
	ChannelCount = 1
)

// pollInterval is how often a blocking Play checks for completion.
const pollInterval = 10 * time.Millisecond

// Player plays one clip at a time. Play blocks until the clip ends or Stop
// is called from another goroutine.
type Player interface {
	Play(clip *Clip) error
	Stop()
	IsPlaying() bool
	Close() error
}

// OtoPlayer implements Player on the system audio device via oto.
type OtoPlayer struct {
	ctx *oto.Context

	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
	closed bool
}

// NewOtoPlayer initializes the system audio context. Returns an error when
// no audio device is available; callers should degrade to silence.
func NewOtoPlayer() (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	log.Debug("audio context initialized", "rate", SampleRate, "channels", ChannelCount)
	return &OtoPlayer{ctx: ctx}, nil
}

// Play plays the clip's PCM data and blocks until playback finishes or Stop
// interrupts it.
func (p *OtoPlayer) Play(clip *Clip) error {
	if clip == nil || len(clip.PCM) == 0 {
		return ErrEmptyClip
	}
	if clip.SampleRate != 0 && clip.SampleRate != SampleRate {
		log.Warn("clip sample rate differs from output context",
			"clip", clip.SampleRate, "context", SampleRate)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPlayerClosed
	}
	// Replacing always silences the previous source first, so an orphaned
	// player can never keep sounding out of Stop's reach.
	if p.active != nil {
		p.active.Pause()
	}
	player := p.ctx.NewPlayer(bytes.NewReader(clip.PCM))
	p.active = player
	p.mu.Unlock()

	player.Play()

	for player.IsPlaying() {
		time.Sleep(pollInterval)
	}

	p.mu.Lock()
	if p.active == player {
		p.active = nil
	}
	p.mu.Unlock()

	return player.Close()
}

// Stop interrupts the current clip, if any. Safe to call concurrently and
// when nothing is playing.
func (p *OtoPlayer) Stop() {
	p.mu.Lock()
	active := p.active
	p.active = nil
	p.mu.Unlock()

	if active != nil {
		active.Pause()
	}
}

// IsPlaying reports whether a clip is currently audible.
func (p *OtoPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil && p.active.IsPlaying()
}

// Close stops playback and marks the player unusable. The oto context
// itself has no close; it lives for the process.
func (p *OtoPlayer) Close() error {
	p.Stop()
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}
