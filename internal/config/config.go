// Package config loads thememode configuration from files, environment and flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/opencode-ai/thememode/internal/platform"
)

// AppName names the config and state directories.
const AppName = "thememode"

// Config errors.
var (
	ErrInvalidSignal       = errors.New("invalid signal")
	ErrInvalidPollInterval = errors.New("poll interval must be positive")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrMissingServerAddr   = errors.New("server address is required")
	ErrMissingJournalPath  = errors.New("journal path is required when the journal is enabled")
)

// Config is the full application configuration.
type Config struct {
	Mode    ModeConfig    `mapstructure:"mode"`
	Logging LoggingConfig `mapstructure:"logging"`
	Journal JournalConfig `mapstructure:"journal"`
	Server  ServerConfig  `mapstructure:"server"`
}

// ModeConfig selects the initial mode and the platform preference source.
type ModeConfig struct {
	// Initial is the raw initial mode. Unknown values mean system.
	Initial string `mapstructure:"initial"`

	// Signal is one of platform.SignalNames.
	Signal string `mapstructure:"signal"`

	// StaticDark is reported by the static signal.
	StaticDark bool `mapstructure:"static_dark"`

	// PollInterval applies to polling signals.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig controls the root logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// JournalConfig controls the transition journal.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ServerConfig controls the local gRPC control service.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	logFormats = []string{"console", "json"}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode: ModeConfig{
			Initial:      "system",
			Signal:       platform.SignalAuto,
			PollInterval: platform.DefaultPollInterval,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalConfig{
			Path: DefaultJournalPath(),
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7787",
		},
	}
}

// DefaultJournalPath returns the journal location under the XDG state directory.
func DefaultJournalPath() string {
	return filepath.Join(xdg.StateHome, AppName, "journal.db")
}

// DefaultConfigPath returns the config file location under the XDG config directory.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Validate checks the configuration for values no component can use.
func (c *Config) Validate() error {
	if !slices.Contains(platform.SignalNames, c.Mode.Signal) {
		return fmt.Errorf("%w %q (want one of %s)", ErrInvalidSignal, c.Mode.Signal, strings.Join(platform.SignalNames, ", "))
	}
	if c.Mode.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("%w %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("%w %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return ErrMissingServerAddr
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return ErrMissingJournalPath
	}
	return nil
}
