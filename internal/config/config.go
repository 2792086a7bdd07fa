// Package config loads the optional bootselect configuration file. A missing
// file yields the defaults; a present file must parse cleanly and contain no
// unrecognized keys, so typos fail loudly instead of being silently ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full configuration surface
type Config struct {

	// Timeout applied to each external command invocation, in seconds.
	// Zero means no timeout: a hung tool blocks indefinitely.
	TimeoutSeconds int `toml:"timeout_seconds"`

	GRUB GRUB `toml:"grub"`
	Log  Log  `toml:"log"`
}

// GRUB holds the GRUB discovery settings
type GRUB struct {

	// Path to the generated GRUB configuration; empty selects the standard
	// location
	ConfigPath string `toml:"config_path"`
}

// Log holds the logging settings
type Log struct {

	// Optional file to append log output to; empty logs to stderr
	File string `toml:"file"`

	// Minimum level: debug, info, warn, or error
	Level string `toml:"level"`
}

// Default returns the configuration used when no file exists
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns the standard location of the configuration file
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate the user configuration directory: %w", err)
	}
	return filepath.Join(base, "bootselect", "config.toml"), nil
}

// Load reads the configuration from path. A missing file is not an error:
// the defaults are returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates configuration TOML. data is the TOML content;
// source is used in error messages.
func Parse(data []byte, source string) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	if err := decodeStrict(data); err != nil {
		return Config{}, fmt.Errorf("config %s contains unrecognized keys: %w", source, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection,
// catching keys that toml.Unmarshal silently ignores
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

func (c Config) validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
}

// Timeout returns the per-command timeout, or zero when none is configured
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SlogLevel maps the configured level name onto a slog level. An empty
// level means info.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
