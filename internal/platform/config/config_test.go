package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jewelia")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Second, cfg.NotifyMinInterval)
	assert.Equal(t, 100, cfg.MaxClientsPerTenant)
	assert.Equal(t, 10000, cfg.MaxWebSocketConnections)
	assert.Equal(t, 20.0, cfg.APIRatePerSecond)
	assert.Equal(t, 40, cfg.APIRateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jewelia")
	t.Setenv("PORT", "9090")
	t.Setenv("NOTIFY_MIN_INTERVAL", "250ms")
	t.Setenv("MAX_CLIENTS_PER_TENANT", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.NotifyMinInterval)
	assert.Equal(t, 7, cfg.MaxClientsPerTenant)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_RejectsNonPositiveInterval(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jewelia")
	t.Setenv("NOTIFY_MIN_INTERVAL", "-5s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTIFY_MIN_INTERVAL")
}

func TestLoad_RejectsNonPositiveClientLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jewelia")
	t.Setenv("MAX_CLIENTS_PER_TENANT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CLIENTS_PER_TENANT")
}
