package strategies

import (
	"time"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// SpreadEvenly distributes commitments across the day's free windows,
// packing them with a fixed inter-task gap and advancing to the next
// window once the current one is exhausted. When the day cannot take all
// commitments, whether by raw demand or by the gap overhead, it refuses
// entirely rather than place a partial day.
type SpreadEvenly struct{}

func (s *SpreadEvenly) Name() string { return NameSpreadEvenly }

func (s *SpreadEvenly) Rearrange(in Input) ([]domain.ScheduleChange, error) {
	changes := make([]domain.ScheduleChange, 0, len(in.Commitments))
	if len(in.Commitments) == 0 {
		return changes, nil
	}

	// Free windows are computed against the anchors alone: the
	// commitments being placed are the ones whose old slots we are
	// abandoning.
	calc := domain.NewAvailabilityCalculator(0)
	windows := calc.FreeWindowsFrom(in.Now, in.Bounds, in.Anchors, nil)

	var demand, supply time.Duration
	for _, c := range in.Commitments {
		demand += c.Duration()
	}
	for _, w := range windows {
		supply += w.Interval().Duration()
	}
	if demand > supply {
		return nil, ErrInsufficientFreeTime // no partial placement
	}

	// Walk the layout before touching any commitment: raw demand may fit
	// while the inter-task gaps push the tail out of the last window, and
	// that case must refuse with nothing moved, same as demand > supply.
	ordered := byCurrentStart(in.Commitments)
	starts := make([]time.Time, 0, len(ordered))
	wi := 0
	var cursor time.Time
	if len(windows) > 0 {
		cursor = windows[0].Start
	}

	for _, c := range ordered {
		for wi < len(windows) {
			windowEnd := windows[wi].End
			if !cursor.Add(c.Duration()).After(windowEnd) {
				break
			}
			wi++
			if wi < len(windows) {
				cursor = windows[wi].Start
			}
		}
		if wi >= len(windows) {
			return nil, ErrInsufficientFreeTime
		}
		starts = append(starts, cursor)
		cursor = cursor.Add(c.Duration() + InterTaskGap)
	}

	for i, c := range ordered {
		changes = place(changes, c, starts[i], "spread across free windows")
	}
	return changes, nil
}
