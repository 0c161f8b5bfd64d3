package strategies

import (
	"time"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// OptimizeGaps packs commitments back-to-back from "now", jumping the
// cursor past any anchor's buffered window it would collide with.
type OptimizeGaps struct{}

func (s *OptimizeGaps) Name() string { return NameOptimizeGaps }

func (s *OptimizeGaps) Rearrange(in Input) ([]domain.ScheduleChange, error) {
	return packFromNow(in, byCurrentStart(in.Commitments), "packed into next gap"), nil
}

// packFromNow is the shared cursor walk behind optimize-gaps and
// prioritize-urgent.
func packFromNow(in Input, ordered []*domain.Commitment, reason string) []domain.ScheduleChange {
	changes := make([]domain.ScheduleChange, 0, len(ordered))
	detector := domain.NewConflictDetector()

	cursor := in.Now
	// Start past the anchor we are currently inside of, if any.
	for _, a := range in.Anchors {
		if a.BlockedInterval().Contains(cursor) {
			cursor = a.BlockedInterval().End()
			break
		}
	}

	for _, c := range ordered {
		cursor = skipAnchors(detector, cursor, c.Duration(), in.Anchors)
		changes = place(changes, c, cursor, reason)
		cursor = cursor.Add(c.Duration())
	}
	return changes
}

// skipAnchors advances the cursor past every anchor window that a
// placement of the given duration would collide with.
func skipAnchors(detector *domain.ConflictDetector, cursor time.Time, duration time.Duration, anchors []domain.AnchorEvent) time.Time {
	for {
		conflict := detector.Check(cursor, duration, anchors)
		if conflict == nil {
			return cursor
		}
		cursor = conflict.Anchor.BlockedInterval().End()
	}
}
