package voice

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/internal/cache"
)

// Channel is the single owner of audio output. Every play request tears down
// whatever is currently audible before it starts, so at most one sound is
// ever playing. When multiple callers race, the last one to arrive wins.
//
// Playback failures are logged and swallowed here. Callers observe only that
// the operation returned without audible output.
type Channel struct {
	player audio.Player
	engine Engine
	store  *cache.Manager

	mu      sync.Mutex
	gen     uint64 // bumped on every takeover, identifies the current owner
	busyGen uint64 // generation of the in-flight operation, 0 when idle
	closed  bool

	// playMu serializes player attaches. Claiming stops the previous source,
	// but without this a superseded caller could still attach after its
	// replacement started; the generation is re-checked under playMu so that
	// window cannot exist.
	playMu sync.Mutex
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithCache attaches a synthesized-audio cache to the channel. Repeated
// announcements reuse cached PCM instead of re-synthesizing.
func WithCache(m *cache.Manager) ChannelOption {
	return func(c *Channel) { c.store = m }
}

// NewChannel creates the audio channel. The engine may be nil, in which case
// Speak becomes a no-op and only PlayClip produces sound.
func NewChannel(player audio.Player, engine Engine, opts ...ChannelOption) *Channel {
	c := &Channel{player: player, engine: engine}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// claim takes exclusive ownership of the channel, stopping any current
// output first. The returned generation identifies this operation; a later
// claim or StopAll supersedes it.
func (c *Channel) claim() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrChannelClosed
	}
	c.gen++
	g := c.gen
	c.busyGen = g
	c.player.Stop()
	return g, nil
}

// release marks the operation done unless it has already been superseded.
func (c *Channel) release(g uint64) {
	c.mu.Lock()
	if c.busyGen == g {
		c.busyGen = 0
	}
	c.mu.Unlock()
}

// superseded reports whether a newer operation has taken over the channel.
func (c *Channel) superseded(g uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen != g
}

// Speak sanitizes text, synthesizes it and plays it, blocking until playback
// finishes or the channel is taken over. Text that sanitizes to nothing is
// silently skipped. Synthesis and playback errors are logged, never returned.
// The boolean reports whether the utterance played to completion, so callers
// can retry announcements that never became audible.
func (c *Channel) Speak(text string) bool {
	clean := Sanitize(text)
	if clean == "" {
		return false
	}
	if c.engine == nil {
		log.Debug("speak skipped, no engine configured")
		return false
	}

	g, err := c.claim()
	if err != nil {
		log.Debug("speak rejected", "err", err)
		return false
	}
	defer c.release(g)

	clip, err := c.synthesize(clean)
	if err != nil {
		log.Warn("speech synthesis failed", "err", err)
		return false
	}
	return c.play(g, clip)
}

// PlayClip plays a pre-recorded clip, blocking until it finishes or the
// channel is taken over. Reports whether the clip played to completion.
func (c *Channel) PlayClip(clip *audio.Clip) bool {
	if clip == nil || len(clip.PCM) == 0 {
		return false
	}
	g, err := c.claim()
	if err != nil {
		log.Debug("clip rejected", "err", err)
		return false
	}
	defer c.release(g)

	return c.play(g, clip)
}

// play attaches the clip to the player unless the operation has been
// superseded. Takeover mid-clip counts as interrupted, not completed.
func (c *Channel) play(g uint64, clip *audio.Clip) bool {
	c.playMu.Lock()
	defer c.playMu.Unlock()
	if c.superseded(g) {
		return false
	}
	if err := c.player.Play(clip); err != nil {
		log.Warn("speech playback failed", "clip", clip.Name, "err", err)
		return false
	}
	return !c.superseded(g)
}

// StopAll silences the channel immediately and supersedes any in-flight
// operation. Safe to call at any time, including when nothing is playing.
func (c *Channel) StopAll() {
	c.mu.Lock()
	c.gen++
	c.busyGen = 0
	c.player.Stop()
	c.mu.Unlock()
}

// IsPlaying reports whether the channel is busy, either audibly playing or
// mid-synthesis for an operation that will play.
func (c *Channel) IsPlaying() bool {
	c.mu.Lock()
	busy := c.busyGen != 0
	c.mu.Unlock()
	return busy || c.player.IsPlaying()
}

// Close stops output and shuts the channel down. Subsequent play requests
// return immediately.
func (c *Channel) Close() error {
	c.mu.Lock()
	c.gen++
	c.busyGen = 0
	c.closed = true
	c.player.Stop()
	c.mu.Unlock()
	return c.player.Close()
}

// synthesize produces a clip for the text, consulting the cache when one is
// attached. The cache stores raw PCM keyed by text and voice; entries are
// only written for clips matching the channel's native format.
func (c *Channel) synthesize(text string) (*audio.Clip, error) {
	var key string
	if c.store != nil {
		key = cache.Key(text, c.engine.Name()+"/"+c.engine.CurrentVoice().ID)
		if pcm, ok := c.store.Get(key); ok {
			return &audio.Clip{
				Name:       "cached",
				PCM:        pcm,
				SampleRate: audio.SampleRate,
				Channels:   audio.ChannelCount,
			}, nil
		}
	}

	clip, err := c.engine.Synthesize(text)
	if err != nil {
		return nil, NewVoiceError(err, c.engine.Name(), "synthesize")
	}
	if c.store != nil && clip.SampleRate == audio.SampleRate && clip.Channels == audio.ChannelCount {
		c.store.Put(key, clip.PCM)
	}
	return clip, nil
}
