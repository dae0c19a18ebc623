package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/bizstart")
	t.Setenv("CSRF_SECRET", strings.Repeat("c", 32))
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("COOKIE_HASH_KEY", strings.Repeat("h", 32))
	t.Setenv("ENCRYPTION_KEY", strings.Repeat("k", 32))
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Security.SecureCookies)
	assert.Equal(t, 12*time.Hour, cfg.Security.AdminSessionDuration)
	assert.Equal(t, 6*time.Hour, cfg.Cache.SnapshotTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Mail.Enabled)
}

func TestLoadProductionSecuresCookies(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SNAPSHOT_CACHE_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Security.SecureCookies)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Minute, cfg.Cache.SnapshotTTL)
}

func TestLoadCollectsErrors(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CSRF_SECRET", "short")
	t.Setenv("ENCRYPTION_KEY", "tiny")
	t.Setenv("APP_ENV", "qa")

	_, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "DATABASE_URL is required")
	assert.Contains(t, msg, "CSRF_SECRET must be at least 32 characters")
	assert.Contains(t, msg, "ENCRYPTION_KEY must be exactly 32 bytes")
	assert.Contains(t, msg, "APP_ENV must be one of")
}

func TestLoadMailRequiresAddresses(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_FROM and MAIL_ADMIN_TO")
}
