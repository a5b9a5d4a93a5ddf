package voice

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config contains all voice notification configuration options.
type Config struct {
	// Global voice settings
	Enabled bool    `yaml:"enabled" env:"FINVOX_VOICE_ENABLED" envDefault:"true"`
	Engine  string  `yaml:"engine" env:"FINVOX_VOICE_ENGINE" envDefault:"espeak"`
	Locale  string  `yaml:"locale" env:"FINVOX_VOICE_LOCALE" envDefault:"en-US"`
	Volume  float64 `yaml:"volume" env:"FINVOX_VOICE_VOLUME" envDefault:"1.0"`
	Rate    float64 `yaml:"rate" env:"FINVOX_VOICE_RATE" envDefault:"1.0"`

	// Queue pacing
	PollInterval time.Duration `yaml:"poll_interval" env:"FINVOX_VOICE_POLL_INTERVAL" envDefault:"100ms"`
	GracePause   time.Duration `yaml:"grace_pause" env:"FINVOX_VOICE_GRACE_PAUSE" envDefault:"300ms"`

	// Routine alert throttling
	AlertsPerMinute int `yaml:"alerts_per_minute" env:"FINVOX_VOICE_ALERTS_PER_MINUTE" envDefault:"6"`

	// Login jingle clip, WAV file. Empty disables the jingle.
	LoginClip string `yaml:"login_clip" env:"FINVOX_VOICE_LOGIN_CLIP"`

	// Synthesized audio cache
	Cache CacheConfig `yaml:"cache"`

	// Engine-specific configurations
	Espeak EspeakConfig `yaml:"espeak"`
	Mock   MockConfig   `yaml:"mock"`
}

// CacheConfig controls the synthesized-audio cache.
type CacheConfig struct {
	Enabled     bool   `yaml:"enabled" env:"FINVOX_VOICE_CACHE_ENABLED" envDefault:"true"`
	Dir         string `yaml:"dir" env:"FINVOX_VOICE_CACHE_DIR"`
	MaxMemoryMB int    `yaml:"max_memory_mb" env:"FINVOX_VOICE_CACHE_MAX_MEMORY_MB" envDefault:"16"`
}

// EspeakConfig contains espeak-ng engine specific settings.
type EspeakConfig struct {
	Binary         string        `yaml:"binary" env:"FINVOX_VOICE_ESPEAK_BINARY" envDefault:"espeak-ng"`
	Voice          string        `yaml:"voice" env:"FINVOX_VOICE_ESPEAK_VOICE"`
	WordsPerMinute int           `yaml:"words_per_minute" env:"FINVOX_VOICE_ESPEAK_WPM" envDefault:"175"`
	Timeout        time.Duration `yaml:"timeout" env:"FINVOX_VOICE_ESPEAK_TIMEOUT" envDefault:"10s"`
}

// MockConfig contains mock engine specific settings for testing.
type MockConfig struct {
	SynthesisDelay time.Duration `yaml:"synthesis_delay" env:"FINVOX_VOICE_MOCK_SYNTHESIS_DELAY" envDefault:"0ms"`
	WordsPerMinute int           `yaml:"words_per_minute" env:"FINVOX_VOICE_MOCK_WPM" envDefault:"150"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Engine:  "espeak",
		Locale:  "en-US",
		Volume:  1.0,
		Rate:    1.0,

		PollInterval: DefaultPollInterval,
		GracePause:   DefaultGracePause,

		AlertsPerMinute: 6,

		Cache:  DefaultCacheConfig(),
		Espeak: DefaultEspeakConfig(),
		Mock:   DefaultMockConfig(),
	}
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:     true,
		MaxMemoryMB: 16,
	}
}

// DefaultEspeakConfig returns default espeak-ng configuration.
func DefaultEspeakConfig() EspeakConfig {
	return EspeakConfig{
		Binary:         "espeak-ng",
		WordsPerMinute: 175,
		Timeout:        10 * time.Second,
	}
}

// DefaultMockConfig returns default mock engine configuration.
func DefaultMockConfig() MockConfig {
	return MockConfig{
		SynthesisDelay: 0,
		WordsPerMinute: 150,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validEngines := []string{"espeak", "mock"}
	engineValid := false
	for _, e := range validEngines {
		if strings.EqualFold(c.Engine, e) {
			engineValid = true
			c.Engine = strings.ToLower(c.Engine)
			break
		}
	}
	if !engineValid {
		return fmt.Errorf("invalid voice engine '%s': must be one of %v", c.Engine, validEngines)
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale '%s': %w", c.Locale, err)
	}

	if c.Volume < 0.0 || c.Volume > 2.0 {
		return fmt.Errorf("volume must be between 0.0 and 2.0, got %f", c.Volume)
	}

	if c.Rate < 0.25 || c.Rate > 4.0 {
		return fmt.Errorf("rate must be between 0.25 and 4.0, got %f", c.Rate)
	}

	if c.PollInterval < 10*time.Millisecond || c.PollInterval > time.Second {
		return fmt.Errorf("poll_interval must be between 10ms and 1s, got %v", c.PollInterval)
	}

	if c.GracePause < 0 || c.GracePause > 2*time.Second {
		return fmt.Errorf("grace_pause must be between 0 and 2s, got %v", c.GracePause)
	}

	if c.AlertsPerMinute < 1 || c.AlertsPerMinute > 60 {
		return fmt.Errorf("alerts_per_minute must be between 1 and 60, got %d", c.AlertsPerMinute)
	}

	if c.Cache.MaxMemoryMB < 1 || c.Cache.MaxMemoryMB > 512 {
		return fmt.Errorf("cache max_memory_mb must be between 1 and 512, got %d", c.Cache.MaxMemoryMB)
	}

	switch c.Engine {
	case "espeak":
		if err := c.Espeak.Validate(); err != nil {
			return fmt.Errorf("espeak config: %w", err)
		}
	case "mock":
		if err := c.Mock.Validate(); err != nil {
			return fmt.Errorf("mock config: %w", err)
		}
	}

	return nil
}

// Validate checks if the espeak-ng configuration is valid.
func (c *EspeakConfig) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("espeak binary path cannot be empty")
	}

	if c.WordsPerMinute < 80 || c.WordsPerMinute > 450 {
		return fmt.Errorf("words_per_minute must be between 80 and 450, got %d", c.WordsPerMinute)
	}

	if c.Timeout < time.Second {
		return fmt.Errorf("timeout must be at least 1 second, got %v", c.Timeout)
	}

	return nil
}

// Validate checks if the mock configuration is valid.
func (c *MockConfig) Validate() error {
	if c.SynthesisDelay < 0 {
		return fmt.Errorf("synthesis_delay cannot be negative, got %v", c.SynthesisDelay)
	}

	if c.WordsPerMinute < 50 || c.WordsPerMinute > 500 {
		return fmt.Errorf("words_per_minute must be between 50 and 500, got %d", c.WordsPerMinute)
	}

	return nil
}

// ToEngineConfig converts voice config to engine config based on the
// selected engine.
func (c *Config) ToEngineConfig() EngineConfig {
	ec := EngineConfig{
		Locale: c.Locale,
		Rate:   float32(c.Rate),
		Volume: float32(c.Volume),
	}

	switch c.Engine {
	case "espeak":
		ec.Voice = c.Espeak.Voice
	case "mock":
		ec.Voice = "mock"
	}

	return ec
}
