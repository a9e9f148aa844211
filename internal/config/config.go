package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Storage selects where the save record lives.
type Storage struct {
	Backend      string `toml:"backend"`
	Path         string `toml:"path"`
	RecordKey    string `toml:"record_key"`
	HistoryLimit int    `toml:"history_limit"`
}

// Logging controls use-case logging to stderr.
type Logging struct {
	Enabled bool   `toml:"enabled"`
	Level   string `toml:"level"`
}

type Config struct {
	Storage Storage `toml:"storage"`
	Logging Logging `toml:"logging"`

	// SourcePath is the file the config was read from, empty when only
	// defaults and environment were used.
	SourcePath string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend:      BackendSQLite,
			Path:         "~/.casewalk/casewalk.db",
			RecordKey:    "casewalk.save",
			HistoryLimit: 20,
		},
		Logging: Logging{
			Enabled: false,
			Level:   "info",
		},
	}
}

// DefaultConfigPath returns ~/.config/casewalk/config.toml.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/casewalk/config.toml")
}

// Load reads path (or the default location when path is empty), applies
// CASEWALK_* environment overrides and validates the result. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	path, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.SourcePath = path
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CASEWALK_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CASEWALK_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("CASEWALK_LOG"); v != "" {
		c.Logging.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CASEWALK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) normalize() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	c.Storage.RecordKey = strings.TrimSpace(c.Storage.RecordKey)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Storage.Path != ":memory:" {
		p, err := expandPath(c.Storage.Path)
		if err != nil {
			return err
		}
		c.Storage.Path = p
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want %q or %q)", c.Storage.Backend, BackendSQLite, BackendFile)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must be set")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.RecordKey == "" {
		return errors.New("storage.record_key must be set for the sqlite backend")
	}
	if c.Storage.HistoryLimit < 0 {
		return fmt.Errorf("storage.history_limit must be >= 0, got %d", c.Storage.HistoryLimit)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
}

// ResolvePath returns the file Load reads for path: the default location
// when path is empty, otherwise path with ~ expanded.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultConfigPath()
	}
	return expandPath(path)
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if p == "~" {
			p = home
		} else if len(p) > 1 && (p[1] == '/' || p[1] == '\\') {
			p = filepath.Join(home, p[2:])
		}
	}
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", p, err)
	}
	return abs, nil
}
