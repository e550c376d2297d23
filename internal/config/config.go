package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appDir         = "toolterm"
	configFileName = "config.yaml"
	envFileName    = ".env"

	defaultBackend   = "sqlite"
	defaultLogLevel  = "info"
	defaultCellWidth = 8
)

// Store manages the runtime configuration for toolterm.
type Store struct {
	path   string
	Config Data
}

// Data represents the persisted application settings.
type Data struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Display DisplayConfig `yaml:"display"`
}

// StorageConfig selects where preferences live.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file,omitempty"`
}

// DisplayConfig tunes how terminal sizes map to logical pixels.
type DisplayConfig struct {
	CellWidthPx int `yaml:"cell_width_px"`
}

// Load retrieves the config from path, or from the default location when
// path is empty, creating the file with defaults if needed. A .env file next
// to the config and TOOLTERM_* environment variables override file values.
func Load(path string) (*Store, error) {
	cfgPath := path
	if cfgPath == "" {
		resolved, err := resolvePath()
		if err != nil {
			return nil, err
		}
		cfgPath = resolved
	}

	cfg := defaultConfig()
	if _, err := os.Stat(cfgPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
		if err := writeConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	} else {
		bytes, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	envPath := filepath.Join(filepath.Dir(cfgPath), envFileName)
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFileName, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = filepath.Dir(cfgPath)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Store{path: cfgPath, Config: cfg}, nil
}

// Save writes the current config values to disk.
func (s *Store) Save() error {
	if s == nil {
		return errors.New("nil config store")
	}
	return writeConfig(s.path, s.Config)
}

// Path returns the config file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Validate reports settings the rest of the program cannot work with.
func (d Data) Validate() error {
	switch d.Storage.Backend {
	case "sqlite", "toml", "memory":
	default:
		return fmt.Errorf("unsupported storage backend: %s", d.Storage.Backend)
	}
	switch d.Log.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("unsupported log level: %s", d.Log.Level)
	}
	if d.Display.CellWidthPx <= 0 {
		return fmt.Errorf("display.cell_width_px must be positive")
	}
	return nil
}

func (d *Data) normalize() {
	d.Storage.Backend = strings.ToLower(strings.TrimSpace(d.Storage.Backend))
	if d.Storage.Backend == "" {
		d.Storage.Backend = defaultBackend
	}
	d.Log.Level = strings.ToLower(strings.TrimSpace(d.Log.Level))
	if d.Log.Level == "" {
		d.Log.Level = defaultLogLevel
	}
	if d.Display.CellWidthPx == 0 {
		d.Display.CellWidthPx = defaultCellWidth
	}
}

func applyEnv(d *Data) error {
	if v, ok := os.LookupEnv("TOOLTERM_BACKEND"); ok {
		d.Storage.Backend = v
	}
	if v, ok := os.LookupEnv("TOOLTERM_DATA_DIR"); ok {
		d.Storage.DataDir = v
	}
	if v, ok := os.LookupEnv("TOOLTERM_LOG_LEVEL"); ok {
		d.Log.Level = v
	}
	if v, ok := os.LookupEnv("TOOLTERM_LOG_FILE"); ok {
		d.Log.File = v
	}
	if v, ok := os.LookupEnv("TOOLTERM_LOG_PRETTY"); ok {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TOOLTERM_LOG_PRETTY: %w", err)
		}
		d.Log.Pretty = pretty
	}
	if v, ok := os.LookupEnv("TOOLTERM_CELL_WIDTH"); ok {
		px, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TOOLTERM_CELL_WIDTH: %w", err)
		}
		d.Display.CellWidthPx = px
	}
	return nil
}

func resolvePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve config directory: %w", err)
		}
	}
	return filepath.Join(base, appDir, configFileName), nil
}

func writeConfig(path string, cfg Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	bytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig() Data {
	return Data{
		Storage: StorageConfig{Backend: defaultBackend},
		Log:     LogConfig{Level: defaultLogLevel},
		Display: DisplayConfig{CellWidthPx: defaultCellWidth},
	}
}
