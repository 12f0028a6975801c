package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Setenv("POLICYIRR_PORT", "")
	t.Setenv("POLICYIRR_LOG_LEVEL", "")
	t.Setenv("POLICYIRR_READ_TIMEOUT", "")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	t.Setenv("POLICYIRR_PORT", "9090")
	t.Setenv("POLICYIRR_LOG_LEVEL", "debug")
	t.Setenv("POLICYIRR_READ_TIMEOUT", "2s")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.ReadTimeout)
}

func TestLoadServerConfig_BadDuration(t *testing.T) {
	t.Setenv("POLICYIRR_READ_TIMEOUT", "soon")

	_, err := LoadServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
}
