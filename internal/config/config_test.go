package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADVISOR_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8002, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 24*time.Hour, cfg.PriceCacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ADVISOR_DATA_DIR", t.TempDir())
	t.Setenv("ADVISOR_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PRICE_CACHE_TTL_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 6*time.Hour, cfg.PriceCacheTTL)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{Port: -1, PriceCacheTTL: time.Hour}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Port: 70000, PriceCacheTTL: time.Hour}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadTTL(t *testing.T) {
	cfg := &Config{Port: 8002, PriceCacheTTL: 0}
	assert.Error(t, cfg.Validate())
}
