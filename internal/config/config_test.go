package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MAGICNUMBERS_DATA_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".magicnumbers"), cfg.DataDir)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.Equal(t, 6, cfg.Digits)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 512, cfg.CacheSize)
	assert.Equal(t, 20, cfg.HistoryLimit)
}

func TestLoad_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MAGICNUMBERS_DATA_DIR", dir)
	t.Setenv("MAGICNUMBERS_LOCALE", "de-DE")
	t.Setenv("MAGICNUMBERS_DIGITS", "12")
	t.Setenv("MAGICNUMBERS_LOG_LEVEL", "debug")
	t.Setenv("MAGICNUMBERS_CACHE_SIZE", "0")
	t.Setenv("MAGICNUMBERS_HISTORY_LIMIT", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{
		DataDir:      dir,
		Locale:       "de-DE",
		Digits:       12,
		LogLevel:     "debug",
		CacheSize:    0,
		HistoryLimit: 50,
	}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"not a number", "MAGICNUMBERS_DIGITS", "six"},
		{"too few digits", "MAGICNUMBERS_DIGITS", "0"},
		{"too many digits", "MAGICNUMBERS_DIGITS", "33"},
		{"negative cache", "MAGICNUMBERS_CACHE_SIZE", "-1"},
		{"history zero", "MAGICNUMBERS_HISTORY_LIMIT", "0"},
		{"history too large", "MAGICNUMBERS_HISTORY_LIMIT", "201"},
		{"bad level", "MAGICNUMBERS_LOG_LEVEL", "verbose"},
		{"blank locale", "MAGICNUMBERS_LOCALE", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAGICNUMBERS_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// --- ParseLevel ---

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("fatal")
	assert.Error(t, err)
}
