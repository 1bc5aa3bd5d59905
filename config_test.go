package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-spoon-core/advisor/internal/core"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, core.Development, cfg.Env())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 3, cfg.Redis.ReadTimeout)
	assert.Equal(t, 100, cfg.Image.SampleSize)
	assert.Equal(t, int64(20<<20), cfg.Image.MaxBytes)
	assert.Equal(t, int64(50_000_000), cfg.Image.MaxPixels)
	assert.Equal(t, "catalog", cfg.Matcher.TieBreak)
	assert.Equal(t, 3, cfg.Session.RecentRounds)

	ttl, err := cfg.SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, ttl)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("IMAGE_SAMPLE_SIZE", "64")
	t.Setenv("MATCHER_TIE_BREAK", "name")
	t.Setenv("MATCHER_SEED", "42")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Env().IsProduction())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 64, cfg.Image.SampleSize)
	assert.Equal(t, "name", cfg.Matcher.TieBreak)
	assert.Equal(t, int64(42), cfg.Matcher.Seed)

	ttl, err := cfg.SessionTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "tie break", key: "MATCHER_TIE_BREAK", value: "random"},
		{name: "log level", key: "LOG_LEVEL", value: "chatty"},
		{name: "sample size", key: "IMAGE_SAMPLE_SIZE", value: "0"},
		{name: "ttl", key: "SESSION_TTL", value: "soon"},
		{name: "negative ttl", key: "SESSION_TTL", value: "-1m"},
		{name: "not a number", key: "SESSION_RECENT_ROUNDS", value: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := loadConfig()
			assert.Error(t, err)
		})
	}
}
