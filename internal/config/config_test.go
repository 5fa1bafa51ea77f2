package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Empty(t, cfg.SeedFile)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.PrettyLog)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SEED_FILE", "fixtures/seed.json")
	t.Setenv("SESSION_TTL", "120")
	t.Setenv("SWEEP_INTERVAL", "15s")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, "fixtures/seed.json", cfg.SeedFile)
	// Bare integers are seconds, duration strings parse as-is.
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.SweepInterval)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestPrettyLogFollowsEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PrettyLog)

	t.Setenv("PRETTY_LOG", "true")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.PrettyLog)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("PRETTY_LOG", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.PrettyLog)
}
