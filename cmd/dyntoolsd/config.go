package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config controls the daemon: logging plus which mutation policies a
// session runs and their knobs.
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Unlock   UnlockConfig `mapstructure:"unlock"`
	Window   WindowConfig `mapstructure:"window"`
}

// UnlockConfig controls the unlock-on-first-greet policy.
type UnlockConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// WindowConfig controls the sliding-window follow-up policy.
type WindowConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Size      int  `mapstructure:"size"`
	Milestone int  `mapstructure:"milestone"`
}

// loadConfig reads configuration from an optional file plus DYNTOOLSD_*
// environment variables, with defaults for everything.
func loadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("unlock.enabled", true)
	v.SetDefault("window.enabled", false)
	v.SetDefault("window.size", 3)
	v.SetDefault("window.milestone", 5)

	v.SetEnvPrefix("DYNTOOLSD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c Config) slogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
