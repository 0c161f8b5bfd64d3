// Package domain contains the schedule-availability core: the time-window
// model, anchor events, commitments, the availability calculator, the
// conflict detector, and the fuzzy commitment resolver.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeRange = errors.New("end time must be after start time")

// TimeInterval is an immutable half-open interval [Start, End).
type TimeInterval struct {
	start time.Time
	end   time.Time
}

// NewTimeInterval creates a time interval. The start must precede the end.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, ErrInvalidTimeRange
	}
	return TimeInterval{start: start, end: end}, nil
}

// MustInterval is a convenience constructor for intervals known to be valid.
// It panics on an inverted range and is intended for tests and literals.
func MustInterval(start, end time.Time) TimeInterval {
	iv, err := NewTimeInterval(start, end)
	if err != nil {
		panic(fmt.Sprintf("invalid interval [%s, %s)", start, end))
	}
	return iv
}

func (iv TimeInterval) Start() time.Time { return iv.start }
func (iv TimeInterval) End() time.Time   { return iv.end }

// Duration returns the interval length.
func (iv TimeInterval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// Minutes returns the interval length in whole minutes.
func (iv TimeInterval) Minutes() int {
	return int(iv.Duration().Minutes())
}

// Overlaps checks if two intervals share any instant.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// Touches checks if two intervals overlap or are adjacent.
func (iv TimeInterval) Touches(other TimeInterval) bool {
	return !iv.start.After(other.end) && !other.start.After(iv.end)
}

// Contains checks if a time falls within the interval.
func (iv TimeInterval) Contains(t time.Time) bool {
	return !t.Before(iv.start) && t.Before(iv.end)
}

// ClampTo restricts the interval to the given bounds. The second return
// value is false when the interval lies fully outside the bounds.
func (iv TimeInterval) ClampTo(bounds TimeInterval) (TimeInterval, bool) {
	start := iv.start
	end := iv.end
	if start.Before(bounds.start) {
		start = bounds.start
	}
	if end.After(bounds.end) {
		end = bounds.end
	}
	if !end.After(start) {
		return TimeInterval{}, false
	}
	return TimeInterval{start: start, end: end}, true
}

// DayBounds delimits the plannable part of one day.
type DayBounds struct {
	Start time.Time
	End   time.Time
}

// Default day window: 06:00 to 23:00 local time.
const (
	DefaultDayStartHour = 6
	DefaultDayEndHour   = 23
)

// NewDayBounds builds the plannable window for the given date using
// offsets from local midnight.
func NewDayBounds(date time.Time, startOffset, endOffset time.Duration) DayBounds {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return DayBounds{
		Start: midnight.Add(startOffset),
		End:   midnight.Add(endOffset),
	}
}

// DefaultDayBounds builds the 06:00-23:00 window for the given date.
func DefaultDayBounds(date time.Time) DayBounds {
	return NewDayBounds(date, DefaultDayStartHour*time.Hour, DefaultDayEndHour*time.Hour)
}

// Interval returns the bounds as a TimeInterval. Degenerate bounds
// (start at or past end) yield the zero interval and false.
func (b DayBounds) Interval() (TimeInterval, bool) {
	if !b.End.After(b.Start) {
		return TimeInterval{}, false
	}
	return TimeInterval{start: b.Start, end: b.End}, true
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextQuarterHour rounds t up to the next 15-minute boundary. A time
// already on a boundary is returned unchanged. Rounding at the end of an
// hour rolls into the next hour (and, at 23:45+, past midnight).
func NextQuarterHour(t time.Time) time.Time {
	truncated := t.Truncate(15 * time.Minute)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(15 * time.Minute)
}
