package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, ":3000", cfg.Port)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "example.com, chat.example.com ,")
	t.Setenv("HISTORY_LIMIT", "100")

	cfg := FromEnv()
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, []string{"example.com", "chat.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.HistoryLimit)
}

func TestFromEnvRejectsBadLimit(t *testing.T) {
	t.Setenv("HISTORY_LIMIT", "banana")
	assert.Equal(t, 50, FromEnv().HistoryLimit)

	t.Setenv("HISTORY_LIMIT", "-5")
	assert.Equal(t, 50, FromEnv().HistoryLimit)
}
