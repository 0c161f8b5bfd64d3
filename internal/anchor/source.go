// Package anchor provides the anchor-event source: per-day prayer times
// with buffer configuration, loaded from a YAML timetable produced
// upstream (location and calculation method are already resolved there).
package anchor

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// Defaults applied when a timetable omits per-kind settings.
const (
	DefaultPrayerDuration = 10 * time.Minute
	DefaultBufferBefore   = 5 * time.Minute
	DefaultBufferAfter    = 10 * time.Minute
)

// Timetable is the YAML schema of the anchor source.
type Timetable struct {
	// MaxBufferMin caps every buffer; 0 keeps the domain cap.
	MaxBufferMin int `yaml:"max_buffer_min"`

	// Kinds overrides duration/buffers per anchor kind.
	Kinds map[string]KindConfig `yaml:"kinds"`

	// Days maps 2006-01-02 dates to kind -> HH:MM rows.
	Days map[string]map[string]string `yaml:"days"`
}

// KindConfig is the per-kind duration and buffer configuration.
type KindConfig struct {
	DurationMin     int `yaml:"duration_min"`
	BufferBeforeMin int `yaml:"buffer_before_min"`
	BufferAfterMin  int `yaml:"buffer_after_min"`
}

// Source serves a day's anchor events from a loaded timetable.
type Source struct {
	timetable Timetable
	maxBuffer time.Duration
}

// LoadSource reads and parses a YAML timetable file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	return ParseSource(data)
}

// ParseSource parses a YAML timetable document.
func ParseSource(data []byte) (*Source, error) {
	var tt Timetable
	if err := yaml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timetable: %w", err)
	}

	maxBuffer := domain.MaxAnchorBuffer
	if tt.MaxBufferMin > 0 {
		configured := time.Duration(tt.MaxBufferMin) * time.Minute
		if configured < maxBuffer {
			maxBuffer = configured
		}
	}
	return &Source{timetable: tt, maxBuffer: maxBuffer}, nil
}

// AnchorsFor returns the date's anchor events sorted by time. A date
// absent from the timetable yields an empty list, not an error: a day
// without anchor data degrades to an unconstrained day.
func (s *Source) AnchorsFor(ctx context.Context, date time.Time) ([]domain.AnchorEvent, error) {
	day := date.Format("2006-01-02")
	rows, ok := s.timetable.Days[day]
	if !ok {
		return []domain.AnchorEvent{}, nil
	}

	anchors := make([]domain.AnchorEvent, 0, len(rows))
	for kind, hhmm := range rows {
		at, err := time.Parse("15:04", hhmm)
		if err != nil {
			return nil, fmt.Errorf("timetable %s/%s: bad time %q", day, kind, hhmm)
		}
		when := time.Date(date.Year(), date.Month(), date.Day(), at.Hour(), at.Minute(), 0, 0, date.Location())

		cfg := s.kindConfig(kind)
		anchors = append(anchors, domain.NewAnchorEvent(
			domain.AnchorKind(kind),
			when,
			cfg.duration,
			clamp(cfg.before, s.maxBuffer),
			clamp(cfg.after, s.maxBuffer),
		))
	}

	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].At.Before(anchors[j].At)
	})
	return anchors, nil
}

type resolvedKind struct {
	duration, before, after time.Duration
}

func (s *Source) kindConfig(kind string) resolvedKind {
	resolved := resolvedKind{
		duration: DefaultPrayerDuration,
		before:   DefaultBufferBefore,
		after:    DefaultBufferAfter,
	}
	cfg, ok := s.timetable.Kinds[kind]
	if !ok {
		return resolved
	}
	if cfg.DurationMin > 0 {
		resolved.duration = time.Duration(cfg.DurationMin) * time.Minute
	}
	if cfg.BufferBeforeMin > 0 {
		resolved.before = time.Duration(cfg.BufferBeforeMin) * time.Minute
	}
	if cfg.BufferAfterMin > 0 {
		resolved.after = time.Duration(cfg.BufferAfterMin) * time.Minute
	}
	return resolved
}

func clamp(d, max time.Duration) time.Duration {
	if d > max {
		return max
	}
	return d
}
