package anchor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/anchor"
	"github.com/mizanapp/mizan/internal/planner/domain"
)

const timetableYAML = `
max_buffer_min: 20
kinds:
  dhuhr:
    duration_min: 15
    buffer_before_min: 10
    buffer_after_min: 25
days:
  "2026-03-14":
    dhuhr: "12:05"
    fajr: "05:10"
  "2026-03-15":
    dhuhr: "12:06"
`

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func TestParseSource_AnchorsFor(t *testing.T) {
	src, err := anchor.ParseSource([]byte(timetableYAML))
	require.NoError(t, err)

	anchors, err := src.AnchorsFor(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, anchors, 2)

	// Sorted by time regardless of YAML order.
	fajr := anchors[0]
	assert.Equal(t, domain.AnchorFajr, fajr.Kind)
	assert.Equal(t, time.Date(2026, 3, 14, 5, 10, 0, 0, time.UTC), fajr.At)
	assert.Equal(t, anchor.DefaultPrayerDuration, fajr.Duration)
	assert.Equal(t, anchor.DefaultBufferBefore, fajr.BufferBefore)
	assert.Equal(t, anchor.DefaultBufferAfter, fajr.BufferAfter)

	dhuhr := anchors[1]
	assert.Equal(t, domain.AnchorDhuhr, dhuhr.Kind)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC), dhuhr.At)
	assert.Equal(t, 15*time.Minute, dhuhr.Duration)
	assert.Equal(t, 10*time.Minute, dhuhr.BufferBefore)
	assert.Equal(t, 20*time.Minute, dhuhr.BufferAfter, "buffer capped by max_buffer_min")
}

func TestSource_AnchorsFor_MissingDate(t *testing.T) {
	src, err := anchor.ParseSource([]byte(timetableYAML))
	require.NoError(t, err)

	anchors, err := src.AnchorsFor(context.Background(), day.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Empty(t, anchors, "a day without timetable data is unconstrained")
}

func TestSource_AnchorsFor_UsesQueryLocation(t *testing.T) {
	src, err := anchor.ParseSource([]byte(timetableYAML))
	require.NoError(t, err)

	zone := time.FixedZone("GST", 4*3600)
	anchors, err := src.AnchorsFor(context.Background(), day.In(zone).Add(4*time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, anchors)
	assert.Equal(t, zone, anchors[0].At.Location())
}

func TestParseSource_BadYAML(t *testing.T) {
	_, err := anchor.ParseSource([]byte("days: [not, a, map]"))
	assert.Error(t, err)
}

func TestSource_AnchorsFor_BadTime(t *testing.T) {
	src, err := anchor.ParseSource([]byte("days:\n  \"2026-03-14\":\n    fajr: \"5 in the morning\"\n"))
	require.NoError(t, err)

	_, err = src.AnchorsFor(context.Background(), day)
	assert.Error(t, err)
}

func TestParseSource_Empty(t *testing.T) {
	src, err := anchor.ParseSource(nil)
	require.NoError(t, err)

	anchors, err := src.AnchorsFor(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, anchors)
}
