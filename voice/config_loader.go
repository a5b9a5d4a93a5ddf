package voice

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadConfigFromViper loads voice configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	cfg := DefaultConfig()

	// Global voice settings
	if viper.IsSet("voice.enabled") {
		cfg.Enabled = viper.GetBool("voice.enabled")
	}
	if viper.IsSet("voice.engine") {
		cfg.Engine = viper.GetString("voice.engine")
	}
	if viper.IsSet("voice.locale") {
		cfg.Locale = viper.GetString("voice.locale")
	}
	if viper.IsSet("voice.volume") {
		cfg.Volume = viper.GetFloat64("voice.volume")
	}
	if viper.IsSet("voice.rate") {
		cfg.Rate = viper.GetFloat64("voice.rate")
	}

	// Queue pacing
	if viper.IsSet("voice.poll_interval") {
		if d, err := time.ParseDuration(viper.GetString("voice.poll_interval")); err == nil {
			cfg.PollInterval = d
		}
	}
	if viper.IsSet("voice.grace_pause") {
		if d, err := time.ParseDuration(viper.GetString("voice.grace_pause")); err == nil {
			cfg.GracePause = d
		}
	}

	if viper.IsSet("voice.alerts_per_minute") {
		cfg.AlertsPerMinute = viper.GetInt("voice.alerts_per_minute")
	}
	if viper.IsSet("voice.login_clip") {
		cfg.LoginClip = viper.GetString("voice.login_clip")
	}

	cfg.Cache = loadCacheConfig()
	cfg.Espeak = loadEspeakConfig()
	cfg.Mock = loadMockConfig()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid voice configuration: %w", err)
	}

	return cfg, nil
}

// loadCacheConfig loads cache configuration from Viper.
func loadCacheConfig() CacheConfig {
	cfg := DefaultCacheConfig()

	if viper.IsSet("voice.cache.enabled") {
		cfg.Enabled = viper.GetBool("voice.cache.enabled")
	}
	if viper.IsSet("voice.cache.dir") {
		cfg.Dir = viper.GetString("voice.cache.dir")
	}
	if viper.IsSet("voice.cache.max_memory_mb") {
		cfg.MaxMemoryMB = viper.GetInt("voice.cache.max_memory_mb")
	}

	return cfg
}

// loadEspeakConfig loads espeak-ng configuration from Viper.
func loadEspeakConfig() EspeakConfig {
	cfg := DefaultEspeakConfig()

	if viper.IsSet("voice.espeak.binary") {
		cfg.Binary = viper.GetString("voice.espeak.binary")
	}
	if viper.IsSet("voice.espeak.voice") {
		cfg.Voice = viper.GetString("voice.espeak.voice")
	}
	if viper.IsSet("voice.espeak.words_per_minute") {
		cfg.WordsPerMinute = viper.GetInt("voice.espeak.words_per_minute")
	}
	if viper.IsSet("voice.espeak.timeout") {
		if d, err := time.ParseDuration(viper.GetString("voice.espeak.timeout")); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// loadMockConfig loads mock engine configuration from Viper.
func loadMockConfig() MockConfig {
	cfg := DefaultMockConfig()

	if viper.IsSet("voice.mock.synthesis_delay") {
		if d, err := time.ParseDuration(viper.GetString("voice.mock.synthesis_delay")); err == nil {
			cfg.SynthesisDelay = d
		}
	}
	if viper.IsSet("voice.mock.words_per_minute") {
		cfg.WordsPerMinute = viper.GetInt("voice.mock.words_per_minute")
	}

	return cfg
}

// SetDefaults sets default values in Viper for voice configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("voice.enabled", defaults.Enabled)
	viper.SetDefault("voice.engine", defaults.Engine)
	viper.SetDefault("voice.locale", defaults.Locale)
	viper.SetDefault("voice.volume", defaults.Volume)
	viper.SetDefault("voice.rate", defaults.Rate)
	viper.SetDefault("voice.poll_interval", defaults.PollInterval.String())
	viper.SetDefault("voice.grace_pause", defaults.GracePause.String())
	viper.SetDefault("voice.alerts_per_minute", defaults.AlertsPerMinute)
	viper.SetDefault("voice.login_clip", defaults.LoginClip)

	viper.SetDefault("voice.cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("voice.cache.max_memory_mb", defaults.Cache.MaxMemoryMB)

	viper.SetDefault("voice.espeak.binary", defaults.Espeak.Binary)
	viper.SetDefault("voice.espeak.words_per_minute", defaults.Espeak.WordsPerMinute)
	viper.SetDefault("voice.espeak.timeout", defaults.Espeak.Timeout.String())

	viper.SetDefault("voice.mock.synthesis_delay", defaults.Mock.SynthesisDelay.String())
	viper.SetDefault("voice.mock.words_per_minute", defaults.Mock.WordsPerMinute)
}

// WatchConfig re-reads voice configuration whenever the config file on disk
// changes and hands the result to onChange. Invalid edits are logged and the
// previous configuration stays in effect.
func WatchConfig(onChange func(Config)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := LoadConfigFromViper()
		if err != nil {
			log.Warn("ignoring voice config change", "file", e.Name, "err", err)
			return
		}
		log.Debug("voice config reloaded", "file", e.Name)
		onChange(cfg)
	})
	viper.WatchConfig()
}
