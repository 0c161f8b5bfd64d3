package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/mizanapp/mizan/internal/shared/domain"
)

// Routing keys for planner domain events.
const (
	EventCommitmentCreated     = "planner.commitment.created"
	EventCommitmentEdited      = "planner.commitment.edited"
	EventCommitmentDeleted     = "planner.commitment.deleted"
	EventCommitmentCompleted   = "planner.commitment.completed"
	EventCommitmentUncompleted = "planner.commitment.uncompleted"
	EventCommitmentRescheduled = "planner.commitment.rescheduled"
	EventCommitmentUnscheduled = "planner.commitment.unscheduled"
	EventDayRearranged         = "planner.day.rearranged"
)

const aggregateCommitment = "commitment"

// CommitmentChanged is raised for every single-commitment mutation. The
// routing key distinguishes the mutation kind.
type CommitmentChanged struct {
	sharedDomain.BaseEvent
	Title    string     `json:"title"`
	OldStart *time.Time `json:"old_start,omitempty"`
	NewStart *time.Time `json:"new_start,omitempty"`
}

// NewCommitmentChanged creates a commitment mutation event for the given
// routing key.
func NewCommitmentChanged(routingKey string, c *Commitment, oldStart *time.Time) *CommitmentChanged {
	return &CommitmentChanged{
		BaseEvent: sharedDomain.NewBaseEvent(c.ID(), aggregateCommitment, routingKey),
		Title:     c.Title(),
		OldStart:  oldStart,
		NewStart:  c.ScheduledStart(),
	}
}

// DayRearranged is raised after a rearrangement strategy moved one or
// more commitments.
type DayRearranged struct {
	sharedDomain.BaseEvent
	Date     time.Time        `json:"date"`
	Strategy string           `json:"strategy"`
	Changes  []ScheduleChange `json:"changes"`
}

// NewDayRearranged creates a rearrangement event.
func NewDayRearranged(date time.Time, strategy string, changes []ScheduleChange) *DayRearranged {
	return &DayRearranged{
		BaseEvent: sharedDomain.NewBaseEvent(uuid.New(), "day", EventDayRearranged),
		Date:      date,
		Strategy:  strategy,
		Changes:   changes,
	}
}
