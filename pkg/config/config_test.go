package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all Mizan-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "MIZAN_STORE_DSN", "RABBITMQ_URL", "MIZAN_TIMETABLE",
		"MIZAN_DAY_START", "MIZAN_DAY_END", "MIZAN_MIN_FREE_WINDOW",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "", cfg.RabbitMQURL)
	assert.Equal(t, "timetable.yaml", cfg.TimetablePath)
	assert.Equal(t, 6*time.Hour, cfg.DayStart)
	assert.Equal(t, 23*time.Hour, cfg.DayEnd)
	assert.Equal(t, 15*time.Minute, cfg.MinFreeWindow)
	assert.Contains(t, cfg.StoreDSN, "mizan.db")
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	t.Setenv("APP_ENV", "production")
	t.Setenv("MIZAN_STORE_DSN", "postgres://localhost/mizan")
	t.Setenv("MIZAN_TIMETABLE", "/etc/mizan/timetable.yaml")
	t.Setenv("MIZAN_DAY_START", "5h30m")
	t.Setenv("MIZAN_DAY_END", "22h")
	t.Setenv("MIZAN_MIN_FREE_WINDOW", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://localhost/mizan", cfg.StoreDSN)
	assert.Equal(t, "/etc/mizan/timetable.yaml", cfg.TimetablePath)
	assert.Equal(t, 5*time.Hour+30*time.Minute, cfg.DayStart)
	assert.Equal(t, 22*time.Hour, cfg.DayEnd)
	assert.Equal(t, 30*time.Minute, cfg.MinFreeWindow)
}

func TestLoad_MalformedDurationFallsBack(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	t.Setenv("MIZAN_MIN_FREE_WINDOW", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.MinFreeWindow)
}
