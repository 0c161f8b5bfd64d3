package intent_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/planner/application/intent"
)

// Saturday, mid-morning.
var now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestTimeSpec_Validate(t *testing.T) {
	assert.ErrorIs(t, intent.TimeSpec{}.Validate(), intent.ErrUnresolvableTime)
	assert.ErrorIs(t, intent.TimeSpec{InMinutes: -5}.Validate(), intent.ErrUnresolvableTime)
	assert.ErrorIs(t, intent.TimeSpec{At: "next tuesday-ish"}.Validate(), intent.ErrUnresolvableTime)
	assert.ErrorIs(t, intent.TimeSpec{Weekday: "someday", TimeOfDay: "10:00"}.Validate(), intent.ErrUnresolvableTime)
	assert.ErrorIs(t, intent.TimeSpec{Weekday: "monday"}.Validate(), intent.ErrUnresolvableTime)
	assert.NoError(t, intent.TimeSpec{Weekday: "monday", TimeOfDay: "10:00"}.Validate())
	assert.NoError(t, intent.TimeSpec{At: "2026-03-14T15:00"}.Validate())
}

func TestTimeSpec_Resolve_Absolute(t *testing.T) {
	got, err := intent.TimeSpec{At: "2026-03-20T15:00"}.Resolve(now)
	require.NoError(t, err)
	// A zoneless timestamp lands in the caller's location.
	assert.Equal(t, time.Date(2026, 3, 20, 15, 0, 0, 0, time.UTC), got)

	got, err = intent.TimeSpec{At: "2026-03-20T15:00:00+04:00"}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Hour())
	_, offset := got.Zone()
	assert.Equal(t, 4*3600, offset, "explicit zone is preserved")
}

func TestTimeSpec_Resolve_Relative(t *testing.T) {
	got, err := intent.TimeSpec{InMinutes: 45}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(45*time.Minute), got)
}

func TestTimeSpec_Resolve_TimeOfDay(t *testing.T) {
	got, err := intent.TimeSpec{TimeOfDay: "14:30"}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC), got)
}

func TestTimeSpec_Resolve_TimeOfDay_PastRollsToTomorrow(t *testing.T) {
	got, err := intent.TimeSpec{TimeOfDay: "08:00"}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), got)
}

func TestTimeSpec_Resolve_Weekday(t *testing.T) {
	// Next Monday after Saturday 2026-03-14 is 2026-03-16.
	got, err := intent.TimeSpec{Weekday: "monday", TimeOfDay: "10:00"}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC), got)
}

func TestTimeSpec_Resolve_Weekday_SameDayPastGoesWeekOut(t *testing.T) {
	// Saturday 08:00 has already passed on Saturday 09:30.
	got, err := intent.TimeSpec{Weekday: "saturday", TimeOfDay: "08:00"}.Resolve(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 21, 8, 0, 0, 0, time.UTC), got)
}

func TestTimeSpec_Resolve_Empty(t *testing.T) {
	_, err := intent.TimeSpec{}.Resolve(now)
	assert.ErrorIs(t, err, intent.ErrUnresolvableTime)
}
