// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Limits accepted by Validate.
const (
	MinDigits       = 1
	MaxDigits       = 32
	MaxHistoryLimit = 200
)

// Config holds every environment-driven setting.
type Config struct {
	DataDir      string `env:"MAGICNUMBERS_DATA_DIR"`
	Locale       string `env:"MAGICNUMBERS_LOCALE"        envDefault:"en-US"`
	Digits       int    `env:"MAGICNUMBERS_DIGITS"        envDefault:"6"`
	LogLevel     string `env:"MAGICNUMBERS_LOG_LEVEL"     envDefault:"info"`
	CacheSize    int    `env:"MAGICNUMBERS_CACHE_SIZE"    envDefault:"512"`
	HistoryLimit int    `env:"MAGICNUMBERS_HISTORY_LIMIT" envDefault:"20"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".magicnumbers")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Digits < MinDigits || c.Digits > MaxDigits {
		return fmt.Errorf("config: MAGICNUMBERS_DIGITS must be in %d..%d, got %d", MinDigits, MaxDigits, c.Digits)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: MAGICNUMBERS_CACHE_SIZE must be >= 0, got %d", c.CacheSize)
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("config: MAGICNUMBERS_HISTORY_LIMIT must be in 1..%d, got %d", MaxHistoryLimit, c.HistoryLimit)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("config: MAGICNUMBERS_LOCALE must not be empty")
	}
	return nil
}

// ParseLevel maps a level name to a zap level. Only debug, info, warn
// and error are accepted.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("config: unknown log level %q", name)
}
