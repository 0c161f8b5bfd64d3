package domain

import "time"

// AnchorKind identifies a fixed daily anchor event.
type AnchorKind string

const (
	AnchorFajr    AnchorKind = "fajr"
	AnchorDhuhr   AnchorKind = "dhuhr"
	AnchorAsr     AnchorKind = "asr"
	AnchorMaghrib AnchorKind = "maghrib"
	AnchorIsha    AnchorKind = "isha"
)

// MaxAnchorBuffer caps the before/after padding around an anchor.
const MaxAnchorBuffer = 30 * time.Minute

// AnchorEvent is a fixed-time daily event (a prayer) with asymmetric
// padding during which no commitment may be scheduled. Anchor times shift
// daily, so anchor events are rebuilt per request and never cached.
type AnchorEvent struct {
	Kind         AnchorKind
	At           time.Time
	Duration     time.Duration
	BufferBefore time.Duration
	BufferAfter  time.Duration
}

// NewAnchorEvent creates an anchor event, clamping both buffers to
// [0, MaxAnchorBuffer].
func NewAnchorEvent(kind AnchorKind, at time.Time, duration, before, after time.Duration) AnchorEvent {
	return AnchorEvent{
		Kind:         kind,
		At:           at,
		Duration:     duration,
		BufferBefore: clampBuffer(before),
		BufferAfter:  clampBuffer(after),
	}
}

func clampBuffer(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxAnchorBuffer {
		return MaxAnchorBuffer
	}
	return d
}

// End returns when the anchor event itself finishes, excluding buffers.
func (a AnchorEvent) End() time.Time {
	return a.At.Add(a.Duration)
}

// BlockedInterval returns the full unavailable window around the anchor,
// [At-BufferBefore, At+Duration+BufferAfter).
func (a AnchorEvent) BlockedInterval() TimeInterval {
	return TimeInterval{
		start: a.At.Add(-a.BufferBefore),
		end:   a.At.Add(a.Duration + a.BufferAfter),
	}
}

// BlocksInterval reports whether the anchor's buffered window intersects
// the candidate interval.
func (a AnchorEvent) BlocksInterval(candidate TimeInterval) bool {
	return a.BlockedInterval().Overlaps(candidate)
}
