package audio

import (
	"sync"
	"time"
)

// MockPlayer simulates playback for tests. Play blocks for the configured
// duration per clip (or until Stop), so exclusivity and ordering can be
// observed without an audio device.
type MockPlayer struct {
	mu         sync.Mutex
	playing    bool
	played     []*Clip
	stopCount  int
	playDelay  time.Duration
	playError  error
	interrupts chan struct{}
}

// NewMockPlayer creates a mock with a short default playback duration.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{
		playDelay:  20 * time.Millisecond,
		interrupts: make(chan struct{}, 1),
	}
}

// SetPlayDuration sets the simulated length of every clip.
func (p *MockPlayer) SetPlayDuration(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playDelay = d
}

// SetPlayError makes every Play call fail with err.
func (p *MockPlayer) SetPlayError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playError = err
}

// Play simulates blocking playback.
func (p *MockPlayer) Play(clip *Clip) error {
	p.mu.Lock()
	if p.playError != nil {
		err := p.playError
		p.mu.Unlock()
		return err
	}
	p.playing = true
	p.played = append(p.played, clip)
	delay := p.playDelay
	p.mu.Unlock()

	select {
	case <-time.After(delay):
	case <-p.interrupts:
	}

	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	return nil
}

// Stop interrupts the simulated playback.
func (p *MockPlayer) Stop() {
	p.mu.Lock()
	wasPlaying := p.playing
	p.playing = false
	p.stopCount++
	p.mu.Unlock()

	if wasPlaying {
		select {
		case p.interrupts <- struct{}{}:
		default:
		}
	}
}

// IsPlaying reports the simulated playback state.
func (p *MockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Close implements Player.
func (p *MockPlayer) Close() error {
	p.Stop()
	return nil
}

// Played returns the clips handed to Play, in order.
func (p *MockPlayer) Played() []*Clip {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Clip, len(p.played))
	copy(out, p.played)
	return out
}

// StopCount returns how many times Stop was called.
func (p *MockPlayer) StopCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopCount
}
