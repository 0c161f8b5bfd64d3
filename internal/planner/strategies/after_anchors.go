package strategies

import (
	"sort"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// AfterAnchors places one commitment immediately after each anchor's
// buffered window, walking the day's anchors in time order. Overdue
// commitments are served first, the rest by their current start.
type AfterAnchors struct{}

func (s *AfterAnchors) Name() string { return NameAfterAnchors }

func (s *AfterAnchors) Rearrange(in Input) ([]domain.ScheduleChange, error) {
	changes := make([]domain.ScheduleChange, 0, len(in.Commitments))
	if len(in.Commitments) == 0 || len(in.Anchors) == 0 {
		return changes, nil
	}

	queue := byCurrentStart(in.Commitments)
	sort.SliceStable(queue, func(i, j int) bool {
		oi, oj := isOverdue(queue[i], in.Now), isOverdue(queue[j], in.Now)
		return oi && !oj
	})

	anchors := make([]domain.AnchorEvent, len(in.Anchors))
	copy(anchors, in.Anchors)
	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].At.Before(anchors[j].At)
	})

	for _, anchor := range anchors {
		if len(queue) == 0 {
			break
		}
		next := queue[0]
		queue = queue[1:]
		start := anchor.BlockedInterval().End()
		changes = place(changes, next, start, "placed after "+string(anchor.Kind))
	}
	return changes, nil
}
