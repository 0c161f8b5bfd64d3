package app_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/app"
	"github.com/mizanapp/mizan/internal/planner/application/intent"
	"github.com/mizanapp/mizan/pkg/config"
	"github.com/mizanapp/mizan/pkg/observability"
)

func localConfig() *config.Config {
	return &config.Config{
		AppEnv:        "development",
		StoreDSN:      ":memory:",
		TimetablePath: "no-such-timetable.yaml",
		DayStart:      6 * time.Hour,
		DayEnd:        23 * time.Hour,
		MinFreeWindow: 15 * time.Minute,
	}
}

func TestNewContainer_LocalMode(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(observability.LogConfig{
		Level:  observability.LogLevelDebug,
		Format: observability.LogFormatText,
		Output: &buf,
	})

	container, err := app.NewContainer(context.Background(), localConfig(), logger)
	require.NoError(t, err)
	defer func() { require.NoError(t, container.Close()) }()

	require.NotNil(t, container.Dispatcher)
	require.NotNil(t, container.Anchors)
	assert.Contains(t, buf.String(), "timetable not found",
		"a missing timetable degrades to an anchorless day")

	// The local bus carries mutation events to the logging consumer.
	buf.Reset()
	out, err := container.Dispatcher.Dispatch(context.Background(), intent.Intent{
		Kind:        intent.KindCreateTask,
		Title:       "Review budget",
		DurationMin: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, intent.OutcomeCreated, out.Kind)
	assert.Contains(t, buf.String(), "domain event")
	assert.Contains(t, buf.String(), "planner.commitment.created")
}

func TestNewContainer_MinFreeWindowApplied(t *testing.T) {
	cfg := localConfig()
	cfg.DayStart = 9 * time.Hour
	cfg.DayEnd = 13 * time.Hour
	cfg.MinFreeWindow = 6 * time.Hour

	container, err := app.NewContainer(context.Background(), cfg, observability.NewLogger(observability.LogConfig{
		Level:  observability.LogLevelError,
		Format: observability.LogFormatText,
		Output: &bytes.Buffer{},
	}))
	require.NoError(t, err)
	defer func() { require.NoError(t, container.Close()) }()

	// The whole 4-hour day falls under the configured minimum window.
	out, err := container.Dispatcher.Dispatch(context.Background(), intent.Intent{
		Kind: intent.KindQueryFreeWindows,
	})
	require.NoError(t, err)
	assert.Equal(t, intent.OutcomeFreeWindows, out.Kind)
	assert.Empty(t, out.Windows)
}
