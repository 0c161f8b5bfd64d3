package domain

import (
	"sort"
	"time"
)

// SuggestionGap is the fixed pause inserted between a conflicting anchor's
// blocked window and the suggested alternative start.
const SuggestionGap = 5 * time.Minute

// AnchorConflict reports a collision between a candidate placement and an
// anchor event's buffered window.
type AnchorConflict struct {
	Anchor    AnchorEvent
	Candidate TimeInterval
}

// ConflictDetector answers point/interval queries against a day's anchor
// events. It is pure and safe to share across dispatch calls.
type ConflictDetector struct {
	gap time.Duration
}

// NewConflictDetector creates a detector with the default suggestion gap.
func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{gap: SuggestionGap}
}

// Check returns the first anchor, in time order, whose buffered window
// intersects [start, start+duration), or nil when the placement is clear.
func (d *ConflictDetector) Check(start time.Time, duration time.Duration, anchors []AnchorEvent) *AnchorConflict {
	if duration <= 0 {
		return nil
	}
	candidate := TimeInterval{start: start, end: start.Add(duration)}

	ordered := sortedAnchors(anchors)
	for _, a := range ordered {
		if a.BlocksInterval(candidate) {
			conflict := AnchorConflict{Anchor: a, Candidate: candidate}
			return &conflict
		}
	}
	return nil
}

// SuggestAfter proposes the earliest start after the conflicting anchor's
// blocked window that does not itself collide with any anchor.
func (d *ConflictDetector) SuggestAfter(conflict AnchorConflict, duration time.Duration, anchors []AnchorEvent) time.Time {
	suggested := conflict.Anchor.BlockedInterval().End().Add(d.gap)
	for {
		next := d.Check(suggested, duration, anchors)
		if next == nil {
			return suggested
		}
		suggested = next.Anchor.BlockedInterval().End().Add(d.gap)
	}
}

func sortedAnchors(anchors []AnchorEvent) []AnchorEvent {
	ordered := make([]AnchorEvent, len(anchors))
	copy(ordered, anchors)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].At.Before(ordered[j].At)
	})
	return ordered
}
