package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "aiverse")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "aiverse")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://localhost:5000", cfg.CaptionServiceURL)
	assert.Equal(t, "http://localhost:5001", cfg.VoiceServiceURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("CORS_ORIGINS", "https://aiverse.app, https://www.aiverse.app")

	cfg := Load()

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 48*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"https://aiverse.app", "https://www.aiverse.app"}, cfg.AllowedOrigins)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV(" ,, "))
}
