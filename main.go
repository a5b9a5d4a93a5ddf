// Package main provides the entry point for the FinVox CLI application.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/finvox/internal/audio"
	"github.com/dgnsrekt/finvox/internal/cache"
	"github.com/dgnsrekt/finvox/internal/dedup"
	"github.com/dgnsrekt/finvox/ui"
	"github.com/dgnsrekt/finvox/utils"
	"github.com/dgnsrekt/finvox/verbal"
	"github.com/dgnsrekt/finvox/voice"
	"github.com/dgnsrekt/finvox/voice/engines"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	engineName string
	voiceName  string
	localeName string
	listVoices bool

	rootCmd = &cobra.Command{
		Use:   "finvox [TEXT]",
		Short: "Voice notifications for your finances",
		Long: paragraph(
			fmt.Sprintf("\nSpeak financial notifications aloud, %s.", keyword("one at a time")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.ArbitraryArgs,
		RunE:             execute,
	}
)

// stack holds the wired voice pipeline for one process.
type stack struct {
	cfg       voice.Config
	engine    voice.Engine
	channel   *voice.Channel
	queue     *voice.Queue
	announcer *voice.Announcer
}

func (s *stack) close() {
	s.queue.StopAllVoice()
	_ = s.channel.Close()
	_ = s.engine.Shutdown()
}

// buildStack wires engine, player, cache, queue, dedup and facade from the
// loaded configuration.
func buildStack() (*stack, error) {
	cfg, err := voice.LoadConfigFromViper()
	if err != nil {
		return nil, err
	}

	// CLI flags win over the config file.
	if engineName != "" {
		cfg.Engine = engineName
	}
	if localeName != "" {
		cfg.Locale = localeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := engines.NewWithFallback(cfg)
	if err != nil {
		return nil, err
	}
	if err := engine.Initialize(cfg.ToEngineConfig()); err != nil {
		return nil, err
	}
	if voiceName != "" {
		v, err := engines.FindVoice(engine, voiceName)
		if err != nil {
			return nil, err
		}
		if err := engine.SetVoice(v); err != nil {
			return nil, err
		}
	}

	player, err := audio.NewOtoPlayer()
	if err != nil {
		return nil, fmt.Errorf("unable to open audio device: %w", err)
	}

	opts := []voice.ChannelOption{}
	if cfg.Cache.Enabled {
		if store := buildCache(cfg.Cache); store != nil {
			opts = append(opts, voice.WithCache(store))
		}
	}
	channel := voice.NewChannel(player, engine, opts...)
	queue := voice.NewQueue(channel,
		voice.WithPollInterval(cfg.PollInterval),
		voice.WithGracePause(cfg.GracePause))

	tracker := dedup.NewTracker(dedup.NewMemoryStore(), durableStore())
	announcer := voice.NewAnnouncer(queue, channel, tracker, cfg)

	voice.WatchConfig(func(updated voice.Config) {
		announcer.SetEnabled(updated.Enabled)
	})

	return &stack{
		cfg:       cfg,
		engine:    engine,
		channel:   channel,
		queue:     queue,
		announcer: announcer,
	}, nil
}

// buildCache assembles the two-level synthesized-audio cache. Disk problems
// degrade to memory-only.
func buildCache(cfg voice.CacheConfig) *cache.Manager {
	mem := cache.NewMemory(int64(cfg.MaxMemoryMB) << 20)

	dir := cfg.Dir
	if dir == "" {
		if d, err := gap.NewScope(gap.User, "finvox").CacheDir(); err == nil {
			dir = filepath.Join(d, "audio")
		}
	} else {
		dir = utils.ExpandPath(dir)
	}
	if dir == "" {
		return cache.NewManager(mem, nil)
	}
	disk, err := cache.NewDisk(dir)
	if err != nil {
		log.Warn("audio disk cache disabled", "dir", dir, "err", err)
		return cache.NewManager(mem, nil)
	}
	return cache.NewManager(mem, disk)
}

// durableStore opens the cross-session flag store for daily dedup. Falls
// back to memory when the data dir is unusable, losing only cross-session
// dedup.
func durableStore() dedup.Store {
	dirs, err := gap.NewScope(gap.User, "finvox").DataDirs()
	if err == nil && len(dirs) > 0 {
		dir := dirs[0]
		if err := os.MkdirAll(dir, 0o755); err == nil {
			if fs, err := dedup.NewFileStore(filepath.Join(dir, "flags.json")); err == nil {
				return fs
			}
		}
	}
	log.Warn("durable flag store unavailable, daily dedup is session-only")
	return dedup.NewMemoryStore()
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(_ *cobra.Command, args []string) error {
	if listVoices {
		s, err := buildStack()
		if err != nil {
			return err
		}
		defer s.close()
		for _, v := range s.engine.Voices() {
			fmt.Printf("%-24s %-10s %s\n", v.ID, v.Language, v.Name)
		}
		return nil
	}

	// if stdin is a pipe then speak the piped text. note that you can also
	// pass the text as arguments.
	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if yes {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("unable to read stdin: %w", err)
		}
		return speakOnce(string(b))
	}

	if len(args) > 0 {
		return speakOnce(strings.Join(args, " "))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("nothing to speak: pass TEXT or pipe it on stdin")
	}
	return runTUI()
}

// speakOnce speaks a single text directly on the channel and exits.
func speakOnce(text string) error {
	if voice.Sanitize(text) == "" {
		return fmt.Errorf("nothing speakable in input")
	}
	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	s.channel.Speak(text)
	return nil
}

func runTUI() error {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	s, err := buildStack()
	if err != nil {
		return err
	}
	defer s.close()

	// One-shot login jingle before the dashboard takes the terminal.
	if s.cfg.LoginClip != "" {
		if clip, err := audio.LoadWAV(utils.ExpandPath(s.cfg.LoginClip)); err == nil {
			s.announcer.PlayLoginJingle(clip)
		} else {
			log.Warn("login clip not playable", "path", s.cfg.LoginClip, "err", err)
		}
	}

	if _, err := ui.NewProgram(cfg, s.announcer, s.queue).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// amountCmd prints a monetary amount as words, without audio.
var amountCmd = &cobra.Command{
	Use:   "amount VALUE",
	Short: "Print a monetary amount as spoken words",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("not a number: %s", args[0])
		}
		loc := verbal.Lookup(chosenLocale())
		fmt.Println(verbal.AmountWords(loc, value))
		return nil
	},
}

// clockCmd prints a clock time as words, without audio.
var clockCmd = &cobra.Command{
	Use:   "clock HH:MM",
	Short: "Print a clock time as spoken words",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		parts := strings.SplitN(args[0], ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("expected HH:MM, got %s", args[0])
		}
		hour, err1 := strconv.Atoi(parts[0])
		minute, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return fmt.Errorf("expected HH:MM, got %s", args[0])
		}
		loc := verbal.Lookup(chosenLocale())
		fmt.Println(verbal.ClockWords(loc, hour, minute))
		return nil
	},
}

func chosenLocale() string {
	if localeName != "" {
		return localeName
	}
	return viper.GetString("voice.locale")
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&engineName, "engine", "e", "", "speech engine (espeak/mock)")
	rootCmd.PersistentFlags().StringVar(&voiceName, "voice", "", "voice to speak with (fuzzy matched)")
	rootCmd.PersistentFlags().StringVarP(&localeName, "locale", "l", "", "locale for spoken numbers and phrases")
	rootCmd.Flags().BoolVar(&listVoices, "voices", false, "list available voices and exit")

	_ = viper.BindPFlag("voice.engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("voice.locale", rootCmd.PersistentFlags().Lookup("locale"))

	voice.SetDefaults()

	rootCmd.AddCommand(configCmd, manCmd, amountCmd, clockCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "finvox")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "finvox")}, dirs...)
	}

	if c := os.Getenv("FINVOX_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("finvox")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("finvox")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "finvox.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
