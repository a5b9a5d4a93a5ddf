package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
)

// setupLog routes logging to a file when debugging is enabled, and discards
// it otherwise so log lines never corrupt the TUI. Returns a closer for the
// log file.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)
	if os.Getenv("FINVOX_DEBUG") == "" {
		return func() error { return nil }, nil
	}

	path := os.Getenv("FINVOX_LOGFILE")
	if path == "" {
		dir, err := gap.NewScope(gap.User, "finvox").CacheDir()
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "finvox.log")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}
