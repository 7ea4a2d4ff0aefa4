package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 100, cfg.DefaultTargetScore)
	assert.Equal(t, 24*time.Hour, cfg.SessionLifetime)
	assert.True(t, cfg.AllowRestart)
	assert.True(t, cfg.SingleOngoingMatch)
	assert.True(t, cfg.ShowStats)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DOMINO_ADDR", ":9090")
	t.Setenv("DOMINO_DEFAULT_TARGET_SCORE", "200")
	t.Setenv("DOMINO_ALLOW_RESTART", "false")
	t.Setenv("DOMINO_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 200, cfg.DefaultTargetScore)
	assert.False(t, cfg.AllowRestart)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-positive target", key: "DOMINO_DEFAULT_TARGET_SCORE", value: "0"},
		{name: "non-numeric target", key: "DOMINO_DEFAULT_TARGET_SCORE", value: "cien"},
		{name: "unknown log level", key: "DOMINO_LOG_LEVEL", value: "loud"},
		{name: "bad duration", key: "DOMINO_SESSION_LIFETIME", value: "forever"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
