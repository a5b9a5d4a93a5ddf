package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# Voice notification configuration
voice:
  # Speak notifications aloud
  enabled: true
  # Speech engine: espeak or mock
  engine: "espeak"
  # Locale for spoken numbers, amounts and phrases
  locale: "en-US"
  # Volume level (0.0 to 2.0)
  volume: 1.0
  # Speech rate multiplier (0.25 to 4.0)
  rate: 1.0

  # How often the queue checks whether the channel went idle
  poll_interval: "100ms"
  # Silence between consecutive announcements
  grace_pause: "300ms"

  # Routine alerts allowed per minute; extra alerts are dropped
  alerts_per_minute: 6

  # WAV clip played once per login. Empty disables the jingle.
  login_clip: ""

  # Synthesized audio cache
  cache:
    enabled: true
    # dir: "~/.cache/finvox/audio"
    max_memory_mb: 16

  # espeak-ng engine configuration
  espeak:
    binary: "espeak-ng"
    # voice: "en-us"
    words_per_minute: 175
    timeout: "10s"

  # Mock engine configuration (for testing)
  mock:
    synthesis_delay: "0ms"
    words_per_minute: 150
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the finvox config file",
	Long:    paragraph(fmt.Sprintf("\n%s the finvox config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("finvox config\nfinvox config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("FinVox", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
