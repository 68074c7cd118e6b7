package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_HOST", "DB_NAME", "ENVIRONMENT", "LOG_JSON", "REDIS_ENABLED", "RATE_LIMIT_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "starwars", cfg.Database.Name)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Logging.JSONFormat)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.BurstSize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.True(t, cfg.Logging.JSONFormat)
	assert.True(t, cfg.Redis.Enabled)
	assert.InDelta(t, 2.5, cfg.RateLimit.RequestsPerSecond, 0.001)
	assert.Contains(t, cfg.ConnectionString(), "host=db.internal")
	assert.Contains(t, cfg.ConnectionString(), "dbname=catalog")
	assert.Contains(t, cfg.ConnectionString(), "sslmode=require")
}

func TestLoadRejectsInvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BURST_SIZE", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST_SIZE")
}

func TestLoadIgnoresRateLimitValuesWhenDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_BURST_SIZE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimit.Enabled)
}
