package strategies

import (
	"sort"
	"time"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// dueSoonHorizon is how far ahead a commitment's current start may lie
// and still count as urgent.
const dueSoonHorizon = time.Hour

// PrioritizeUrgent is the optimize-gaps walk with an urgency ordering in
// front of it: overdue commitments first, then ones due within the hour,
// then the rest chronologically.
type PrioritizeUrgent struct{}

func (s *PrioritizeUrgent) Name() string { return NamePrioritizeUrgent }

func (s *PrioritizeUrgent) Rearrange(in Input) ([]domain.ScheduleChange, error) {
	ordered := byCurrentStart(in.Commitments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return urgency(ordered[i], in.Now) < urgency(ordered[j], in.Now)
	})
	return packFromNow(in, ordered, "urgent first"), nil
}

func urgency(c *domain.Commitment, now time.Time) int {
	s := c.ScheduledStart()
	switch {
	case s == nil:
		return 2
	case s.Before(now):
		return 0 // overdue
	case s.Sub(now) <= dueSoonHorizon:
		return 1 // due soon
	default:
		return 2
	}
}
