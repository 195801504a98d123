package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the test; t.Setenv registers the restore.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetenv(t, "PORT", "DB_PATH", "WP_API_URL", "ADMIN_EMAIL", "ADMIN_PASSWORD",
		"WP_MEDIA_CONCURRENCY", "LOGIN_RATE_WINDOW", "COOKIE_SECURE")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "./jardin.db", cfg.DBPath)
	assert.Equal(t, "https://api.jardininfinito.com", cfg.WPBaseURL)
	assert.Equal(t, "admin@jardininfinito.com", cfg.AdminEmail)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, 8, cfg.MediaConcurrency)
	assert.Equal(t, 30*time.Second, cfg.LoginRateWindow)
	assert.False(t, cfg.CookieSecure)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WP_API_URL", "https://wp.example.com")
	t.Setenv("ADMIN_PASSWORD", "clave-segura")
	t.Setenv("WP_MEDIA_CONCURRENCY", "2")
	t.Setenv("LOGIN_RATE_WINDOW", "1m")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://wp.example.com", cfg.WPBaseURL)
	assert.Equal(t, "clave-segura", cfg.AdminPassword)
	assert.Equal(t, 2, cfg.MediaConcurrency)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("WP_MEDIA_CONCURRENCY", "-1")
	t.Setenv("LOGIN_RATE_WINDOW", "pronto")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, 8, cfg.MediaConcurrency)
	assert.Equal(t, 30*time.Second, cfg.LoginRateWindow)
}
