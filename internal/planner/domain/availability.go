package domain

import (
	"sort"
	"time"
)

// MinFreeWindow is the minimum slot size worth reporting.
const MinFreeWindow = 15 * time.Minute

// FreeWindow is a maximal gap between blocked ranges. Free windows are
// recomputed per query and never persisted.
type FreeWindow struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DurationMin int       `json:"duration_min"`
}

// Interval returns the window as a TimeInterval.
func (w FreeWindow) Interval() TimeInterval {
	return TimeInterval{start: w.Start, end: w.End}
}

// AvailabilityCalculator computes free windows for a bounded day by
// merging anchor-event and commitment intervals into a minimal blocked
// list and emitting the complementary gaps.
type AvailabilityCalculator struct {
	minWindow time.Duration
}

// NewAvailabilityCalculator creates a calculator. A non-positive minimum
// window falls back to MinFreeWindow.
func NewAvailabilityCalculator(minWindow time.Duration) *AvailabilityCalculator {
	if minWindow <= 0 {
		minWindow = MinFreeWindow
	}
	return &AvailabilityCalculator{minWindow: minWindow}
}

// FreeWindows returns the free windows of the day delimited by bounds,
// after subtracting buffered anchors and scheduled commitments.
func (c *AvailabilityCalculator) FreeWindows(
	bounds DayBounds,
	anchors []AnchorEvent,
	commitments []*Commitment,
) []FreeWindow {
	return c.freeWindows(bounds, anchors, commitments)
}

// FreeWindowsFrom behaves like FreeWindows but, when now falls on the same
// day and past the day start, clamps the day start forward to the next
// 15-minute boundary after now. When the clamp lands at or past the day
// end the result is empty; the requested day never rolls into the next.
func (c *AvailabilityCalculator) FreeWindowsFrom(
	now time.Time,
	bounds DayBounds,
	anchors []AnchorEvent,
	commitments []*Commitment,
) []FreeWindow {
	if SameDay(now, bounds.Start) && now.After(bounds.Start) {
		bounds.Start = NextQuarterHour(now)
	}
	return c.freeWindows(bounds, anchors, commitments)
}

func (c *AvailabilityCalculator) freeWindows(
	bounds DayBounds,
	anchors []AnchorEvent,
	commitments []*Commitment,
) []FreeWindow {
	// Fail closed on a degenerate day.
	day, ok := bounds.Interval()
	if !ok {
		return []FreeWindow{}
	}

	blocked := c.BlockedRanges(bounds, anchors, commitments)

	windows := make([]FreeWindow, 0, len(blocked)+1)
	cursor := day.Start()
	for _, b := range blocked {
		if gap := b.Start().Sub(cursor); gap >= c.minWindow {
			windows = append(windows, newFreeWindow(cursor, b.Start()))
		}
		if b.End().After(cursor) {
			cursor = b.End()
		}
	}
	if rest := day.End().Sub(cursor); rest >= c.minWindow {
		windows = append(windows, newFreeWindow(cursor, day.End()))
	}
	return windows
}

// BlockedRanges returns the merged, sorted, non-overlapping unavailable
// intervals of the day: buffered anchors plus scheduled commitments,
// clamped to the day bounds. Ranges fully outside the day are discarded.
func (c *AvailabilityCalculator) BlockedRanges(
	bounds DayBounds,
	anchors []AnchorEvent,
	commitments []*Commitment,
) []TimeInterval {
	day, ok := bounds.Interval()
	if !ok {
		return nil
	}

	raw := make([]TimeInterval, 0, len(anchors)+len(commitments))
	for _, a := range anchors {
		if iv, ok := a.BlockedInterval().ClampTo(day); ok {
			raw = append(raw, iv)
		}
	}
	for _, cm := range commitments {
		iv, scheduled := cm.ScheduledInterval()
		if !scheduled {
			continue
		}
		if clamped, ok := iv.ClampTo(day); ok {
			raw = append(raw, clamped)
		}
	}
	return MergeIntervals(raw)
}

// MergeIntervals sorts intervals by start and coalesces any that overlap
// or touch into single runs. The result is sorted and non-overlapping;
// merging is idempotent.
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return []TimeInterval{}
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.Before(sorted[j].start)
	})

	merged := []TimeInterval{sorted[0]}
	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !next.start.After(last.end) {
			if next.end.After(last.end) {
				last.end = next.end
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

func newFreeWindow(start, end time.Time) FreeWindow {
	return FreeWindow{
		Start:       start,
		End:         end,
		DurationMin: int(end.Sub(start).Minutes()),
	}
}
