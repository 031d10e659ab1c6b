package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30, cfg.Alerts.DefaultDays)
	assert.Equal(t, 30*time.Second, cfg.Alerts.CacheTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Zero(t, cfg.RateLimit.RPS)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_STORAGE", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALERT_DEFAULT_DAYS", "14")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 14, cfg.Alerts.DefaultDays)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_DiasNoPositivosVuelvenAlDefault(t *testing.T) {
	t.Setenv("ALERT_DEFAULT_DAYS", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Alerts.DefaultDays)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("APP_STORAGE", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "stockflow", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/stockflow?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
