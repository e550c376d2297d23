// Package cli wires configuration, storage and the preference store into
// cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"toolterm/internal/config"
	"toolterm/internal/prefs"
	"toolterm/internal/storage"
	"toolterm/internal/theme"
	"toolterm/internal/viewport"
)

var (
	configPath  string
	backendFlag string
	logLevel    string

	cfgStore  *config.Store
	logCloser io.Closer
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/toolterm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "preference storage backend (sqlite, toml, memory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
}

var rootCmd = &cobra.Command{
	Use:           "toolterm",
	Short:         "Terminal toolbox with persistent themes",
	Long:          "toolterm is a terminal front-end for small developer tools. Run without a subcommand to open the UI.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd == cmd.Root() || cmd.Name() == "ui")
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			err := logCloser.Close()
			logCloser = nil
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// GetConfig returns the loaded configuration, or nil before PreRun.
func GetConfig() *config.Store {
	return cfgStore
}

func loadConfig(interactive bool) error {
	store, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if backendFlag != "" {
		store.Config.Storage.Backend = strings.ToLower(backendFlag)
	}
	if logLevel != "" {
		store.Config.Log.Level = strings.ToLower(logLevel)
	}
	if err := store.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfgStore = store

	logCfg := store.Config.Log
	if interactive && logCfg.File == "" {
		// The UI owns the terminal, so logs go to a file next to the data.
		logCfg.File = filepath.Join(store.Config.Storage.DataDir, "toolterm.log")
	}
	closer, err := setupLogger(logCfg)
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

func setupLogger(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	var closer io.Closer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.File != ""}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// session bundles everything a command needs to read or change preferences.
type session struct {
	id      string
	backend storage.Backend
	watcher *viewport.Watcher
	prefs   *prefs.Store
}

func openSession(ctx context.Context) (*session, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	if err := theme.Validate(theme.All()); err != nil {
		log.Warn().Err(err).Msg("built-in theme registry is inconsistent")
	}

	backend, err := storage.OpenBackend(ctx, cfg.Config.Storage.Backend, cfg.Config.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	columns, err := viewport.TerminalColumns(int(os.Stdout.Fd()))
	if err != nil {
		log.Debug().Err(err).Msg("terminal width unknown")
		columns = 0
	}
	watcher := viewport.NewColumnWatcher(columns, viewport.WithCellWidth(cfg.Config.Display.CellWidthPx))

	id := uuid.NewString()
	logger := log.With().Str("component", "prefs").Str("session", id).Logger()
	store := prefs.Initialize(backend, watcher, prefs.WithLogger(logger))

	log.Debug().
		Str("session", id).
		Str("backend", cfg.Config.Storage.Backend).
		Int("width_px", watcher.Width()).
		Msg("session opened")
	return &session{id: id, backend: backend, watcher: watcher, prefs: store}, nil
}

func (s *session) Close() error {
	if s == nil {
		return nil
	}
	s.prefs.Close()
	return s.backend.Close()
}
