package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. THEMEMODE_MODE_INITIAL.
const EnvPrefix = "THEMEMODE"

// SetDefaults registers DefaultConfig values on v.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("mode.initial", def.Mode.Initial)
	v.SetDefault("mode.signal", def.Mode.Signal)
	v.SetDefault("mode.static_dark", def.Mode.StaticDark)
	v.SetDefault("mode.poll_interval", def.Mode.PollInterval)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("journal.enabled", def.Journal.Enabled)
	v.SetDefault("journal.path", def.Journal.Path)
	v.SetDefault("server.addr", def.Server.Addr)
}

// Load reads configuration into a Config. An explicit path must exist;
// otherwise the default locations are searched and a missing file is not an
// error. Environment variables override file values.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaultConfigDir() string {
	return filepath.Dir(DefaultConfigPath())
}
