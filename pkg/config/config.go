// Package config loads application configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Logging is configured
// separately by observability.LoggerFromEnv.
type Config struct {
	// Application
	AppEnv string

	// Store: postgres://, sqlite://path, bare path, or :memory:.
	StoreDSN string

	// RabbitMQ; empty keeps the in-process bus.
	RabbitMQURL string

	// Anchor timetable
	TimetablePath string

	// Day window offsets from local midnight.
	DayStart time.Duration
	DayEnd   time.Duration

	// Minimum reportable free window.
	MinFreeWindow time.Duration
}

// Load loads configuration from environment variables, reading a .env
// file first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		StoreDSN:      getEnv("MIZAN_STORE_DSN", defaultStorePath()),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		TimetablePath: getEnv("MIZAN_TIMETABLE", "timetable.yaml"),
		DayStart:      getDurationEnv("MIZAN_DAY_START", 6*time.Hour),
		DayEnd:        getDurationEnv("MIZAN_DAY_END", 23*time.Hour),
		MinFreeWindow: getDurationEnv("MIZAN_MIN_FREE_WINDOW", 15*time.Minute),
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mizan.db"
	}
	return home + "/.mizan/mizan.db"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
