package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

func scheduled(t *testing.T, title string, duration time.Duration, start time.Time) *domain.Commitment {
	t.Helper()
	c, err := domain.NewCommitment(title, duration, domain.CategoryPersonal)
	require.NoError(t, err)
	c.ScheduleAt(start)
	return c
}

func dhuhrAt(h, m int) domain.AnchorEvent {
	return domain.NewAnchorEvent(domain.AnchorDhuhr, at(h, m), 10*time.Minute, 5*time.Minute, 10*time.Minute)
}

func TestAvailabilityCalculator_FreeWindows_SingleAnchor(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day)

	// Dhuhr at 12:00 blocks 11:55-12:20 including its buffers.
	windows := calc.FreeWindows(bounds, []domain.AnchorEvent{dhuhrAt(12, 0)}, nil)

	require.Len(t, windows, 2)
	assert.Equal(t, at(6, 0), windows[0].Start)
	assert.Equal(t, at(11, 55), windows[0].End)
	assert.Equal(t, 355, windows[0].DurationMin)
	assert.Equal(t, at(12, 20), windows[1].Start)
	assert.Equal(t, at(23, 0), windows[1].End)
	assert.Equal(t, 640, windows[1].DurationMin)
}

func TestAvailabilityCalculator_FreeWindows_EmptyDay(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	windows := calc.FreeWindows(domain.DefaultDayBounds(day), nil, nil)

	require.Len(t, windows, 1)
	assert.Equal(t, at(6, 0), windows[0].Start)
	assert.Equal(t, at(23, 0), windows[0].End)
}

func TestAvailabilityCalculator_FreeWindows_DropsShortGaps(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day)

	// Two commitments leave a 10-minute gap, below the reporting floor.
	commitments := []*domain.Commitment{
		scheduled(t, "first", time.Hour, at(9, 0)),
		scheduled(t, "second", time.Hour, at(10, 10)),
	}
	windows := calc.FreeWindows(bounds, nil, commitments)

	require.Len(t, windows, 2)
	assert.Equal(t, at(6, 0), windows[0].Start)
	assert.Equal(t, at(9, 0), windows[0].End)
	assert.Equal(t, at(11, 10), windows[1].Start)
	assert.Equal(t, at(23, 0), windows[1].End)
}

func TestAvailabilityCalculator_FreeWindows_UnscheduledIgnored(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	c, err := domain.NewCommitment("floating", time.Hour, domain.CategoryWork)
	require.NoError(t, err)

	windows := calc.FreeWindows(domain.DefaultDayBounds(day), nil, []*domain.Commitment{c})
	require.Len(t, windows, 1)
	assert.Equal(t, 17*60, windows[0].DurationMin)
}

// Windows and blocked ranges together must tile the whole day exactly.
func TestAvailabilityCalculator_CoversWholeDay(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day)
	anchors := []domain.AnchorEvent{
		domain.NewAnchorEvent(domain.AnchorFajr, at(5, 10), 10*time.Minute, 5*time.Minute, 10*time.Minute),
		dhuhrAt(12, 0),
		domain.NewAnchorEvent(domain.AnchorAsr, at(15, 30), 10*time.Minute, 5*time.Minute, 10*time.Minute),
		domain.NewAnchorEvent(domain.AnchorMaghrib, at(18, 45), 10*time.Minute, 5*time.Minute, 10*time.Minute),
		domain.NewAnchorEvent(domain.AnchorIsha, at(20, 15), 10*time.Minute, 5*time.Minute, 10*time.Minute),
	}
	commitments := []*domain.Commitment{
		scheduled(t, "deep work", 90*time.Minute, at(9, 0)),
		scheduled(t, "groceries", 45*time.Minute, at(16, 30)),
	}

	windows := calc.FreeWindows(bounds, anchors, commitments)
	blocked := calc.BlockedRanges(bounds, anchors, commitments)

	var total time.Duration
	for _, w := range windows {
		assert.False(t, w.Start.Before(bounds.Start))
		assert.False(t, w.End.After(bounds.End))
		total += w.End.Sub(w.Start)
	}
	for _, b := range blocked {
		total += b.Duration()
	}
	// Fajr's blocked window ends before 06:00 and drops out entirely. No
	// gap in this fixture is below the reporting floor, so the tiles sum
	// to the full day.
	assert.Equal(t, bounds.End.Sub(bounds.Start), total)

	// Windows never intersect blocked ranges.
	for _, w := range windows {
		for _, b := range blocked {
			assert.False(t, w.Interval().Overlaps(b),
				"window %v overlaps blocked %v", w, b)
		}
	}
}

func TestAvailabilityCalculator_FreeWindowsFrom_ClampsToNow(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day)

	windows := calc.FreeWindowsFrom(at(13, 7), bounds, nil, nil)

	require.Len(t, windows, 1)
	assert.Equal(t, at(13, 15), windows[0].Start, "clamp starts at the next quarter hour")
	assert.Equal(t, at(23, 0), windows[0].End)
}

func TestAvailabilityCalculator_FreeWindowsFrom_LateNightEmpty(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day)

	// 23:50 rounds up past the day end; the day never rolls into tomorrow.
	windows := calc.FreeWindowsFrom(at(23, 50), bounds, nil, nil)
	assert.Empty(t, windows)
}

func TestAvailabilityCalculator_FreeWindowsFrom_OtherDayUnclamped(t *testing.T) {
	calc := domain.NewAvailabilityCalculator(0)
	bounds := domain.DefaultDayBounds(day.AddDate(0, 0, 1))

	windows := calc.FreeWindowsFrom(at(13, 0), bounds, nil, nil)
	require.Len(t, windows, 1)
	assert.Equal(t, bounds.Start, windows[0].Start)
}

func TestMergeIntervals(t *testing.T) {
	overlapping := []domain.TimeInterval{
		domain.MustInterval(at(10, 0), at(11, 0)),
		domain.MustInterval(at(10, 30), at(11, 30)),
		domain.MustInterval(at(11, 30), at(12, 0)), // touching, coalesces
		domain.MustInterval(at(14, 0), at(15, 0)),
	}

	merged := domain.MergeIntervals(overlapping)
	require.Len(t, merged, 2)
	assert.Equal(t, at(10, 0), merged[0].Start())
	assert.Equal(t, at(12, 0), merged[0].End())
	assert.Equal(t, at(14, 0), merged[1].Start())

	// Idempotent: merging a merged list changes nothing.
	again := domain.MergeIntervals(merged)
	assert.Equal(t, merged, again)
}

func TestMergeIntervals_Empty(t *testing.T) {
	assert.Empty(t, domain.MergeIntervals(nil))
}
