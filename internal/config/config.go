package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	DBPath           string
	WPBaseURL        string
	WPUsername       string
	WPPassword       string
	AdminEmail       string
	AdminPassword    string
	MediaConcurrency int
	CookieSecure     bool
	LoginRateWindow  time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		DBPath:        getEnv("DB_PATH", "./jardin.db"),
		WPBaseURL:     getEnv("WP_API_URL", "https://api.jardininfinito.com"),
		WPUsername:    os.Getenv("WP_USERNAME"),
		WPPassword:    os.Getenv("WP_PASSWORD"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@jardininfinito.com"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD environment variable not set. Using the default development password. PLEASE SET ADMIN_PASSWORD IN PRODUCTION!")
		cfg.AdminPassword = "admin123"
	}

	// Cap on concurrent media lookups per catalog load.
	concurrency, err := strconv.Atoi(getEnv("WP_MEDIA_CONCURRENCY", "8"))
	if err != nil || concurrency < 1 {
		slog.Error("Invalid WP_MEDIA_CONCURRENCY, falling back to default", "WP_MEDIA_CONCURRENCY", os.Getenv("WP_MEDIA_CONCURRENCY"))
		concurrency = 8
	}
	cfg.MediaConcurrency = concurrency

	window, err := time.ParseDuration(getEnv("LOGIN_RATE_WINDOW", "30s"))
	if err != nil {
		slog.Error("Invalid LOGIN_RATE_WINDOW, falling back to default", "LOGIN_RATE_WINDOW", os.Getenv("LOGIN_RATE_WINDOW"))
		window = 30 * time.Second
	}
	cfg.LoginRateWindow = window

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
