package espeak

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/finvox/voice"
)

func TestInitializeFailsWithoutBinary(t *testing.T) {
	cfg := voice.DefaultEspeakConfig()
	cfg.Binary = "espeak-binary-that-does-not-exist"
	e := New(cfg)

	err := e.Initialize(voice.EngineConfig{Locale: "en-US"})
	if !errors.Is(err, voice.ErrEngineNotAvailable) {
		t.Errorf("error = %v, want ErrEngineNotAvailable", err)
	}
	if e.IsAvailable() {
		t.Error("engine reports available with a missing binary")
	}
}

func TestSynthesizeRequiresInitialization(t *testing.T) {
	e := New(voice.DefaultEspeakConfig())

	if _, err := e.Synthesize("hello"); !errors.Is(err, voice.ErrEngineNotInitialized) {
		t.Errorf("error = %v, want ErrEngineNotInitialized", err)
	}
}

func TestShutdownBlocksFurtherUse(t *testing.T) {
	e := New(voice.DefaultEspeakConfig())
	if err := e.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if _, err := e.Synthesize("hello"); !errors.Is(err, voice.ErrEngineShutdown) {
		t.Errorf("error = %v, want ErrEngineShutdown", err)
	}
	if e.IsAvailable() {
		t.Error("engine reports available after shutdown")
	}
}

func TestParseVoiceListing(t *testing.T) {
	listing := []byte(`Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-us           --/M      English_(America)  gmw/en-US            (en 10)
 5  pt-br           --/M      Portuguese_(Brazil) roa/pt-BR           (pt 10)
`)

	voices := parseVoiceListing(listing)
	if len(voices) != 3 {
		t.Fatalf("parsed %d voices, want 3", len(voices))
	}
	if voices[1].ID != "gmw/en-US" {
		t.Errorf("voice ID = %q, want gmw/en-US", voices[1].ID)
	}
	if voices[1].Name != "English_(America)" {
		t.Errorf("voice name = %q", voices[1].Name)
	}
	if voices[2].Language != "pt-br" {
		t.Errorf("voice language = %q, want pt-br", voices[2].Language)
	}
}

func TestParseVoiceListingSkipsMalformedRows(t *testing.T) {
	listing := []byte(`Pty Language
garbage
 5  en-us           --/M      English_(America)  gmw/en-US
`)

	voices := parseVoiceListing(listing)
	if len(voices) != 1 {
		t.Fatalf("parsed %d voices, want 1", len(voices))
	}
}

func TestSetVoiceRejectsEmptyID(t *testing.T) {
	e := New(voice.DefaultEspeakConfig())

	if err := e.SetVoice(voice.Voice{}); !errors.Is(err, voice.ErrVoiceNotFound) {
		t.Errorf("error = %v, want ErrVoiceNotFound", err)
	}
	if err := e.SetVoice(voice.Voice{ID: "en-gb"}); err != nil {
		t.Errorf("set voice: %v", err)
	}
	if got := e.CurrentVoice().ID; got != "en-gb" {
		t.Errorf("current voice = %q, want en-gb", got)
	}
}
