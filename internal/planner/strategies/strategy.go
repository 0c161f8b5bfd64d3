// Package strategies implements the pluggable day-rearrangement
// algorithms. Each strategy reorders a day's commitments using the
// availability calculator and conflict detector as primitives, writes the
// new start times onto the touched commitments, and returns an audit
// trail of the moves it made.
package strategies

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// Strategy names accepted by a rearrange-day intent.
const (
	NameAfterAnchors     = "after-anchors"
	NameOptimizeGaps     = "optimize-gaps"
	NamePrioritizeUrgent = "prioritize-urgent"
	NameSpreadEvenly     = "spread-evenly"
)

// InterTaskGap is the fixed pause spread-evenly leaves between packed
// commitments.
const InterTaskGap = 10 * time.Minute

var (
	ErrUnknownStrategy = errors.New("unknown rearrangement strategy")

	// ErrInsufficientFreeTime is returned when total commitment demand
	// exceeds the day's total free time; no partial placement happens.
	ErrInsufficientFreeTime = errors.New("commitments exceed available free time")
)

// Input carries everything a strategy may consult. Strategies read the
// anchor list and day bounds, and mutate only the scheduled start of the
// commitments they place.
type Input struct {
	Now         time.Time
	Bounds      domain.DayBounds
	Anchors     []domain.AnchorEvent
	Commitments []*domain.Commitment
}

// Strategy is one rearrangement algorithm. Rearrange records a
// ScheduleChange only when a commitment's computed start differs from its
// current one, so re-applying a strategy over unchanged input yields no
// new changes.
type Strategy interface {
	Name() string
	Rearrange(in Input) ([]domain.ScheduleChange, error)
}

// ForName returns the strategy registered under the given name.
func ForName(name string) (Strategy, error) {
	switch name {
	case NameAfterAnchors:
		return &AfterAnchors{}, nil
	case NameOptimizeGaps:
		return &OptimizeGaps{}, nil
	case NamePrioritizeUrgent:
		return &PrioritizeUrgent{}, nil
	case NameSpreadEvenly:
		return &SpreadEvenly{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Names lists the registered strategy names.
func Names() []string {
	return []string{NameAfterAnchors, NameOptimizeGaps, NamePrioritizeUrgent, NameSpreadEvenly}
}

// place moves the commitment to start when the computed start differs
// from the current one, and records the change.
func place(changes []domain.ScheduleChange, c *domain.Commitment, start time.Time, reason string) []domain.ScheduleChange {
	old := c.ScheduledStart()
	if old != nil && old.Equal(start) {
		return changes
	}
	var oldCopy *time.Time
	if old != nil {
		o := *old
		oldCopy = &o
	}
	c.ScheduleAt(start)
	return append(changes, domain.ScheduleChange{
		CommitmentID:    c.ID(),
		CommitmentTitle: c.Title(),
		OldStart:        oldCopy,
		NewStart:        start,
		Reason:          reason,
	})
}

// byCurrentStart orders commitments chronologically by their current
// start, unscheduled ones last, ties broken by title for determinism.
func byCurrentStart(commitments []*domain.Commitment) []*domain.Commitment {
	sorted := make([]*domain.Commitment, len(commitments))
	copy(sorted, commitments)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].ScheduledStart(), sorted[j].ScheduledStart()
		switch {
		case si == nil && sj == nil:
			return sorted[i].Title() < sorted[j].Title()
		case si == nil:
			return false
		case sj == nil:
			return true
		case si.Equal(*sj):
			return sorted[i].Title() < sorted[j].Title()
		default:
			return si.Before(*sj)
		}
	})
	return sorted
}

// isOverdue reports whether the commitment's current start has already
// passed.
func isOverdue(c *domain.Commitment, now time.Time) bool {
	s := c.ScheduledStart()
	return s != nil && s.Before(now)
}
