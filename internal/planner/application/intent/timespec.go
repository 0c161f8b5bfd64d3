package intent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnresolvableTime = errors.New("time spec cannot be resolved")

// absoluteLayouts are the accepted forms of an absolute timestamp.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// TimeSpec is the shorthand form a requested time arrives in: an absolute
// timestamp, a relative offset in minutes, or a time-of-day optionally
// pinned to the next named weekday. The dispatcher resolves it to a
// concrete instant before any conflict check.
type TimeSpec struct {
	At        string `json:"at,omitempty"`          // absolute, ISO-style
	InMinutes int    `json:"in_minutes,omitempty"`  // relative to now
	TimeOfDay string `json:"time_of_day,omitempty"` // "15:04"
	Weekday   string `json:"weekday,omitempty"`     // "monday", next occurrence
}

// IsZero reports whether nothing was specified.
func (ts TimeSpec) IsZero() bool {
	return ts.At == "" && ts.InMinutes == 0 && ts.TimeOfDay == "" && ts.Weekday == ""
}

// Validate rejects specs that could not resolve at dispatch time.
func (ts TimeSpec) Validate() error {
	if ts.IsZero() {
		return fmt.Errorf("%w: empty spec", ErrUnresolvableTime)
	}
	if ts.At != "" {
		if _, err := parseAbsolute(ts.At); err != nil {
			return err
		}
		return nil
	}
	if ts.InMinutes < 0 {
		return fmt.Errorf("%w: negative offset", ErrUnresolvableTime)
	}
	if ts.Weekday != "" {
		if _, ok := weekdays[strings.ToLower(ts.Weekday)]; !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrUnresolvableTime, ts.Weekday)
		}
		if ts.TimeOfDay == "" {
			return fmt.Errorf("%w: weekday without time of day", ErrUnresolvableTime)
		}
	}
	if ts.TimeOfDay != "" {
		if _, err := time.Parse("15:04", ts.TimeOfDay); err != nil {
			return fmt.Errorf("%w: bad time of day %q", ErrUnresolvableTime, ts.TimeOfDay)
		}
	}
	return nil
}

// Resolve turns the spec into a concrete instant. Precedence: absolute,
// then relative minutes, then weekday+time-of-day, then time-of-day (today,
// rolling to tomorrow when already past).
func (ts TimeSpec) Resolve(now time.Time) (time.Time, error) {
	switch {
	case ts.At != "":
		t, err := parseAbsolute(ts.At)
		if err != nil {
			return time.Time{}, err
		}
		if t.Location() == time.UTC && !strings.ContainsAny(ts.At, "Zz+") {
			// Layouts without a zone parse as UTC; pin them to local time.
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		}
		return t, nil

	case ts.InMinutes > 0:
		return now.Add(time.Duration(ts.InMinutes) * time.Minute), nil

	case ts.Weekday != "":
		target := weekdays[strings.ToLower(ts.Weekday)]
		tod, err := time.Parse("15:04", ts.TimeOfDay)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: bad time of day %q", ErrUnresolvableTime, ts.TimeOfDay)
		}
		day := now
		for i := 0; i < 7; i++ {
			candidate := atTimeOfDay(day, tod)
			if day.Weekday() == target && candidate.After(now) {
				return candidate, nil
			}
			day = day.AddDate(0, 0, 1)
		}
		// Same weekday, time already past: one week out.
		return atTimeOfDay(now.AddDate(0, 0, 7), tod), nil

	case ts.TimeOfDay != "":
		tod, err := time.Parse("15:04", ts.TimeOfDay)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: bad time of day %q", ErrUnresolvableTime, ts.TimeOfDay)
		}
		candidate := atTimeOfDay(now, tod)
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate, nil
	}
	return time.Time{}, fmt.Errorf("%w: empty spec", ErrUnresolvableTime)
}

func parseAbsolute(s string) (time.Time, error) {
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrUnresolvableTime, s)
}

func atTimeOfDay(day time.Time, tod time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, day.Location())
}
