package intent

import (
	"time"

	"github.com/google/uuid"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// OutcomeKind discriminates the outcome union returned to the caller.
type OutcomeKind string

const (
	OutcomeCreated            OutcomeKind = "created"
	OutcomeEdited             OutcomeKind = "edited"
	OutcomeDeletePending      OutcomeKind = "delete_pending"
	OutcomeDeleted            OutcomeKind = "deleted"
	OutcomeCompleted          OutcomeKind = "completed"
	OutcomeUncompleted        OutcomeKind = "uncompleted"
	OutcomeRescheduled        OutcomeKind = "rescheduled"
	OutcomeMovedToUnscheduled OutcomeKind = "moved_to_unscheduled"
	OutcomeRearranged         OutcomeKind = "rearranged"
	OutcomeTaskList           OutcomeKind = "task_list"
	OutcomeAnchorList         OutcomeKind = "anchor_list"
	OutcomeFreeWindows        OutcomeKind = "free_windows"
	OutcomePrayerConflict     OutcomeKind = "prayer_conflict"
	OutcomeNeedsClarification OutcomeKind = "needs_clarification"
	OutcomeNotFound           OutcomeKind = "not_found"
	OutcomeInfeasible         OutcomeKind = "infeasible"
)

// CommitmentView is the outward shape of a commitment.
type CommitmentView struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	DurationMin    int        `json:"duration_min"`
	Category       string     `json:"category"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	Completed      bool       `json:"completed"`
	Recurring      bool       `json:"recurring"`
	Notes          string     `json:"notes,omitempty"`
}

// AnchorView is the outward shape of an anchor event.
type AnchorView struct {
	Kind         string    `json:"kind"`
	At           time.Time `json:"at"`
	DurationMin  int       `json:"duration_min"`
	BlockedFrom  time.Time `json:"blocked_from"`
	BlockedUntil time.Time `json:"blocked_until"`
}

// Outcome is the single result variant of one dispatched intent. Kind
// determines which fields are populated.
type Outcome struct {
	Kind       OutcomeKind             `json:"kind"`
	Message    string                  `json:"message,omitempty"`
	Commitment *CommitmentView         `json:"commitment,omitempty"`
	Tasks      []CommitmentView        `json:"tasks,omitempty"`
	Anchors    []AnchorView            `json:"anchors,omitempty"`
	Windows    []domain.FreeWindow     `json:"windows,omitempty"`
	Changes    []domain.ScheduleChange `json:"changes,omitempty"`
	Candidates []CommitmentView        `json:"candidates,omitempty"`
	Suggestion *time.Time              `json:"suggestion,omitempty"`
	Pending    *Intent                 `json:"pending,omitempty"`
	Reason     string                  `json:"reason,omitempty"`
}

// ViewOf maps a commitment to its outward shape.
func ViewOf(c *domain.Commitment) CommitmentView {
	return CommitmentView{
		ID:             c.ID(),
		Title:          c.Title(),
		DurationMin:    c.DurationMinutes(),
		Category:       string(c.Category()),
		ScheduledStart: c.ScheduledStart(),
		Completed:      c.IsCompleted(),
		Recurring:      c.IsRecurring(),
		Notes:          c.Notes(),
	}
}

// ViewsOf maps a commitment slice to views.
func ViewsOf(cs []*domain.Commitment) []CommitmentView {
	views := make([]CommitmentView, len(cs))
	for i, c := range cs {
		views[i] = ViewOf(c)
	}
	return views
}

// AnchorViewOf maps an anchor event to its outward shape.
func AnchorViewOf(a domain.AnchorEvent) AnchorView {
	blocked := a.BlockedInterval()
	return AnchorView{
		Kind:         string(a.Kind),
		At:           a.At,
		DurationMin:  int(a.Duration.Minutes()),
		BlockedFrom:  blocked.Start(),
		BlockedUntil: blocked.End(),
	}
}

// AnchorViewsOf maps an anchor slice to views.
func AnchorViewsOf(anchors []domain.AnchorEvent) []AnchorView {
	views := make([]AnchorView, len(anchors))
	for i, a := range anchors {
		views[i] = AnchorViewOf(a)
	}
	return views
}

// NewSingle builds an outcome around one commitment.
func NewSingle(kind OutcomeKind, c *domain.Commitment) Outcome {
	view := ViewOf(c)
	return Outcome{Kind: kind, Commitment: &view}
}

// NewTaskList builds a task-list outcome.
func NewTaskList(cs []*domain.Commitment) Outcome {
	return Outcome{Kind: OutcomeTaskList, Tasks: ViewsOf(cs)}
}

// NewAnchorList builds an anchor-list outcome.
func NewAnchorList(anchors []domain.AnchorEvent) Outcome {
	return Outcome{Kind: OutcomeAnchorList, Anchors: AnchorViewsOf(anchors)}
}

// NewFreeWindows builds a free-windows outcome.
func NewFreeWindows(windows []domain.FreeWindow) Outcome {
	return Outcome{Kind: OutcomeFreeWindows, Windows: windows}
}

// NewRearranged builds a rearranged outcome.
func NewRearranged(changes []domain.ScheduleChange) Outcome {
	return Outcome{Kind: OutcomeRearranged, Changes: changes}
}

// NewPrayerConflict reports a collision with an anchor, carrying a
// suggested alternative and the pending intent the caller may re-submit.
func NewPrayerConflict(conflict domain.AnchorConflict, suggestion time.Time, pending Intent) Outcome {
	return Outcome{
		Kind:       OutcomePrayerConflict,
		Message:    "requested time collides with " + string(conflict.Anchor.Kind),
		Suggestion: &suggestion,
		Pending:    &pending,
	}
}

// NewNotFound reports that the resolver matched nothing.
func NewNotFound(query string) Outcome {
	return Outcome{Kind: OutcomeNotFound, Message: "no commitment matches", Reason: query}
}

// NewNeedsClarification enumerates ambiguous candidates for the caller to
// choose among.
func NewNeedsClarification(message string, candidates []*domain.Commitment) Outcome {
	return Outcome{
		Kind:       OutcomeNeedsClarification,
		Message:    message,
		Candidates: ViewsOf(candidates),
	}
}

// NewInfeasible reports a structurally impossible request.
func NewInfeasible(reason string, alternative *time.Time) Outcome {
	return Outcome{Kind: OutcomeInfeasible, Reason: reason, Suggestion: alternative}
}
