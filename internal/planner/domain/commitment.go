package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	sharedDomain "github.com/mizanapp/mizan/internal/shared/domain"
)

var (
	ErrEmptyTitle        = errors.New("commitment title must not be empty")
	ErrInvalidDuration   = errors.New("commitment duration must be positive")
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
)

// Category classifies a commitment.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryWorship  Category = "worship"
	CategoryExercise Category = "exercise"
	CategoryErrand   Category = "errand"
	CategoryStudy    Category = "study"
)

// Commitment is a user task with a title, a duration, and an optional
// scheduled start. The commitment collection is owned by the persistence
// layer; the planner borrows it for the duration of one dispatch call.
type Commitment struct {
	sharedDomain.BaseEntity
	title          string
	duration       time.Duration
	category       Category
	scheduledStart *time.Time
	completed      bool
	recurrence     string // RFC 5545 RRULE, empty for one-off commitments
	notes          string
}

// NewCommitment creates an unscheduled commitment.
func NewCommitment(title string, duration time.Duration, category Category) (*Commitment, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if category == "" {
		category = CategoryPersonal
	}
	return &Commitment{
		BaseEntity: sharedDomain.NewBaseEntity(),
		title:      title,
		duration:   duration,
		category:   category,
	}, nil
}

// Getters
func (c *Commitment) Title() string             { return c.title }
func (c *Commitment) Duration() time.Duration   { return c.duration }
func (c *Commitment) DurationMinutes() int      { return int(c.duration.Minutes()) }
func (c *Commitment) Category() Category        { return c.category }
func (c *Commitment) ScheduledStart() *time.Time { return c.scheduledStart }
func (c *Commitment) IsCompleted() bool         { return c.completed }
func (c *Commitment) IsRecurring() bool         { return c.recurrence != "" }
func (c *Commitment) Recurrence() string        { return c.recurrence }
func (c *Commitment) Notes() string             { return c.notes }

// IsScheduled reports whether the commitment has a concrete start time.
// Unscheduled commitments never participate in interval computations.
func (c *Commitment) IsScheduled() bool {
	return c.scheduledStart != nil
}

// ScheduledEnd returns the scheduled end time, or nil when unscheduled.
func (c *Commitment) ScheduledEnd() *time.Time {
	if c.scheduledStart == nil {
		return nil
	}
	end := c.scheduledStart.Add(c.duration)
	return &end
}

// ScheduledInterval returns the occupied interval for a scheduled
// commitment. The second return value is false when unscheduled.
func (c *Commitment) ScheduledInterval() (TimeInterval, bool) {
	if c.scheduledStart == nil {
		return TimeInterval{}, false
	}
	return TimeInterval{start: *c.scheduledStart, end: c.scheduledStart.Add(c.duration)}, true
}

// ScheduleAt sets the commitment's start time.
func (c *Commitment) ScheduleAt(t time.Time) {
	start := t
	c.scheduledStart = &start
	c.Touch()
}

// Unschedule clears the commitment's start time.
func (c *Commitment) Unschedule() {
	c.scheduledStart = nil
	c.Touch()
}

// MarkCompleted marks the commitment as done.
func (c *Commitment) MarkCompleted() {
	c.completed = true
	c.Touch()
}

// MarkUncompleted reopens the commitment.
func (c *Commitment) MarkUncompleted() {
	c.completed = false
	c.Touch()
}

// Rename changes the title.
func (c *Commitment) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	c.title = title
	c.Touch()
	return nil
}

// SetDuration changes the commitment duration.
func (c *Commitment) SetDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	c.duration = d
	c.Touch()
	return nil
}

// SetCategory changes the category.
func (c *Commitment) SetCategory(cat Category) {
	c.category = cat
	c.Touch()
}

// SetNotes replaces the notes text.
func (c *Commitment) SetNotes(notes string) {
	c.notes = notes
	c.Touch()
}

// SetRecurrence installs an RFC 5545 RRULE. An empty string clears it.
func (c *Commitment) SetRecurrence(rule string) error {
	if rule != "" {
		if _, err := rrule.StrToRRule(rule); err != nil {
			return ErrInvalidRecurrence
		}
	}
	c.recurrence = rule
	c.Touch()
	return nil
}

// OccursOn reports whether the commitment belongs to the given day: a
// scheduled commitment by its start date, a recurring one by expanding its
// rule for that single day only.
func (c *Commitment) OccursOn(date time.Time) bool {
	if c.scheduledStart != nil && SameDay(*c.scheduledStart, date) {
		return true
	}
	if c.recurrence == "" {
		return false
	}
	rule, err := rrule.StrToRRule(c.recurrence)
	if err != nil {
		return false
	}
	rule.DTStart(c.CreatedAt())
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	occurrences := rule.Between(dayStart, dayStart.Add(24*time.Hour), true)
	return len(occurrences) > 0
}

// RehydrateCommitment recreates a commitment from persisted state.
func RehydrateCommitment(
	id uuid.UUID,
	title string,
	duration time.Duration,
	category Category,
	scheduledStart *time.Time,
	completed bool,
	recurrence string,
	notes string,
	createdAt, updatedAt time.Time,
) *Commitment {
	return &Commitment{
		BaseEntity:     sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		title:          title,
		duration:       duration,
		category:       category,
		scheduledStart: scheduledStart,
		completed:      completed,
		recurrence:     recurrence,
		notes:          notes,
	}
}
