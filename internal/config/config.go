package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataPath        string
	DataWatch       bool
	DataSchedule    string // cron spec for periodic reloads; empty disables
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Page presentation.
	Title        string
	Credit       string
	LogoPath     string // empty serves the embedded logo
	NumberLocale language.Tag
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	dataWatch, err := parseBool("DATA_WATCH", false)
	if err != nil {
		return nil, err
	}

	locale, err := language.Parse(envOrDefault("NUMBER_LOCALE", "en"))
	if err != nil {
		return nil, fmt.Errorf("invalid NUMBER_LOCALE: %w", err)
	}

	cfg := &Config{
		DataPath:        envOrDefault("DATA_PATH", "dashboard/main_data.csv"),
		DataWatch:       dataWatch,
		DataSchedule:    strings.TrimSpace(os.Getenv("DATA_RELOAD_SCHEDULE")),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(envOrDefault("LOG_FORMAT", "json")),
		ShutdownTimeout: shutdownTimeout,
		Title:           envOrDefault("DASHBOARD_TITLE", "Bike Sharing Dashboard"),
		Credit:          envOrDefault("DASHBOARD_CREDIT", "github.com/zarazannetta/Analisis-Data-Python"),
		LogoPath:        os.Getenv("LOGO_PATH"),
		NumberLocale:    locale,
	}

	if strings.TrimSpace(cfg.DataPath) == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}
