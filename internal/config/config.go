// Package config loads runtime configuration for an einkaufsliste session.
// Values are populated from .einkaufsliste.yaml, EINKAUFSLISTE_* env vars,
// and CLI flags, in ascending precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration.
type Config struct {
	ServerURL      string `mapstructure:"server_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	TelemetryLog   string `mapstructure:"telemetry_log"`
	HistoryDB      string `mapstructure:"history_db"`
	Verbose        bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("server_url", "")
	viper.SetDefault("timeout_seconds", 10)
	viper.SetDefault("telemetry_log", "")
	viper.SetDefault("history_db", defaultHistoryPath())
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Timeout returns the persist/fetch timeout as a duration. Persist calls are
// never cancelled once started; a conservative timeout bounds them and a
// timed-out persist counts as a failure.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// defaultHistoryPath places the purchase archive under the user's home
// directory, falling back to the working directory when home is unknown.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "einkaufsliste-history.db"
	}
	return filepath.Join(home, ".einkaufsliste", "history.db")
}
