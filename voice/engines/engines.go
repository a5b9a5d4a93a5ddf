// Package engines provides speech engine implementations and selection.
package engines

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/dgnsrekt/finvox/voice"
	"github.com/dgnsrekt/finvox/voice/engines/espeak"
	"github.com/dgnsrekt/finvox/voice/engines/mock"
)

// New creates the engine named in the configuration.
func New(cfg voice.Config) (voice.Engine, error) {
	switch cfg.Engine {
	case "espeak":
		return espeak.New(cfg.Espeak), nil
	case "mock":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown voice engine: %s", cfg.Engine)
	}
}

// NewWithFallback creates the configured engine wrapped so that repeated
// failures switch to the silent mock engine. Announcements then resolve
// without audio instead of erroring on every call.
func NewWithFallback(cfg voice.Config) (voice.Engine, error) {
	primary, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Engine == "mock" {
		return primary, nil
	}
	return NewFallbackEngine(primary, mock.New(), 3), nil
}

// voiceSource adapts a voice inventory for fuzzy matching over the voices'
// names, IDs and languages.
type voiceSource []voice.Voice

func (s voiceSource) Len() int { return len(s) }

func (s voiceSource) String(i int) string {
	return s[i].Name + " " + s[i].ID + " " + s[i].Language
}

// FindVoice fuzzy-matches query against the engine's voice inventory and
// returns the best match.
func FindVoice(engine voice.Engine, query string) (voice.Voice, error) {
	voices := engine.Voices()
	if len(voices) == 0 {
		return voice.Voice{}, voice.ErrVoiceNotFound
	}
	matches := fuzzy.FindFrom(query, voiceSource(voices))
	if len(matches) == 0 {
		return voice.Voice{}, fmt.Errorf("%w: no voice matches %q", voice.ErrVoiceNotFound, query)
	}
	return voices[matches[0].Index], nil
}
