// Package espeak drives the espeak-ng binary for speech synthesis.
package espeak

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/voice"
)

// Engine synthesizes speech by invoking espeak-ng with --stdout and decoding
// the WAV it writes. One subprocess per utterance; espeak is fast enough
// that process startup is not worth amortizing.
type Engine struct {
	cfg voice.EspeakConfig

	mu          sync.Mutex
	engineCfg   voice.EngineConfig
	activeVoice voice.Voice
	voices      []voice.Voice
	initialized bool
	shutdown    bool
}

// New creates an espeak-ng engine with the given settings.
func New(cfg voice.EspeakConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Name identifies the engine.
func (e *Engine) Name() string { return "espeak" }

// Initialize verifies the binary exists, loads the voice inventory and
// selects a voice: the configured one, else one matching the locale, else
// espeak's default.
func (e *Engine) Initialize(config voice.EngineConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return voice.ErrEngineAlreadyInitialized
	}
	if _, err := exec.LookPath(e.cfg.Binary); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", voice.ErrEngineNotAvailable, e.cfg.Binary)
	}

	e.engineCfg = config
	e.voices = e.loadVoices()

	want := e.cfg.Voice
	if want == "" && config.Voice != "" {
		want = config.Voice
	}
	if want == "" && config.Locale != "" {
		// espeak voice identifiers look like "en-us", "pt-br"
		want = strings.ToLower(config.Locale)
	}
	e.activeVoice = voice.Voice{ID: want, Name: want, Language: config.Locale}
	e.initialized = true
	return nil
}

// Synthesize runs espeak-ng and decodes the WAV it produces.
func (e *Engine) Synthesize(text string) (*audio.Clip, error) {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return nil, voice.ErrEngineShutdown
	}
	if !e.initialized {
		e.mu.Unlock()
		return nil, voice.ErrEngineNotInitialized
	}
	args := e.argsLocked()
	binary := e.cfg.Binary
	timeout := e.cfg.Timeout
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = strings.NewReader(text)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: espeak timed out after %v", voice.ErrSynthesisFailed, timeout)
		}
		return nil, fmt.Errorf("%w: %v: %s", voice.ErrSynthesisFailed, err, strings.TrimSpace(errBuf.String()))
	}

	clip, err := audio.DecodeWAV(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", voice.ErrSynthesisFailed, err)
	}
	clip.Name = "espeak"
	return clip, nil
}

// argsLocked builds the command line. Text arrives on stdin.
func (e *Engine) argsLocked() []string {
	wpm := float64(e.cfg.WordsPerMinute)
	if e.engineCfg.Rate > 0 {
		wpm *= float64(e.engineCfg.Rate)
	}
	amplitude := 100
	if e.engineCfg.Volume > 0 {
		amplitude = int(e.engineCfg.Volume * 100)
	}
	args := []string{
		"--stdout",
		"--stdin",
		"-b", "1", // utf-8 input
		"-s", strconv.Itoa(int(wpm)),
		"-a", strconv.Itoa(amplitude),
	}
	if e.activeVoice.ID != "" {
		args = append(args, "-v", e.activeVoice.ID)
	}
	return args
}

// Voices returns the voices espeak-ng reported at initialization.
func (e *Engine) Voices() []voice.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voices
}

// SetVoice selects the active voice.
func (e *Engine) SetVoice(v voice.Voice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v.ID == "" {
		return voice.ErrVoiceNotFound
	}
	e.activeVoice = v
	return nil
}

// CurrentVoice returns the active voice.
func (e *Engine) CurrentVoice() voice.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeVoice
}

// IsAvailable reports whether the espeak-ng binary can be found.
func (e *Engine) IsAvailable() bool {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return false
	}
	binary := e.cfg.Binary
	e.mu.Unlock()
	_, err := exec.LookPath(binary)
	return err == nil
}

// Shutdown marks the engine unusable. espeak holds no persistent resources.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

// loadVoices asks espeak-ng for its voice listing. Failure just means an
// empty inventory; synthesis can still run with the default voice.
func (e *Engine) loadVoices() []voice.Voice {
	cmd := exec.Command(e.cfg.Binary, "--voices")
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	return parseVoiceListing(out)
}

// parseVoiceListing parses `espeak-ng --voices` output. Columns:
//
//	Pty Language Age/Gender VoiceName File Other Languages
func parseVoiceListing(out []byte) []voice.Voice {
	var voices []voice.Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		if first { // header row
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 {
			continue
		}
		voices = append(voices, voice.Voice{
			ID:       fields[4],
			Name:     fields[3],
			Language: fields[1],
		})
	}
	return voices
}
