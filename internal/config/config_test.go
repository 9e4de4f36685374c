package config_test

import (
	"testing"
	"time"

	"tracker/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRY_HOURS", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.RunMigrations)
}

func TestLoad_ParsesTypedValues(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("REDIS_DB", "3")

	cfg := config.Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLocation(t *testing.T) {
	cfg := &config.Config{Timezone: "Europe/Moscow"}
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())

	cfg.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, cfg.Location())
}
