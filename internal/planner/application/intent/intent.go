// Package intent defines the contract boundary with the upstream
// language-understanding component: a closed set of structured intents in
// and a closed set of typed outcomes back. Payloads are validated once,
// at parse time; nothing past this boundary deals with missing fields.
package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind discriminates the intent union.
type Kind string

const (
	KindCreateTask        Kind = "create_task"
	KindEditTask          Kind = "edit_task"
	KindDeleteTask        Kind = "delete_task"
	KindCompleteTask      Kind = "complete_task"
	KindUncompleteTask    Kind = "uncomplete_task"
	KindRescheduleTask    Kind = "reschedule_task"
	KindMoveToUnscheduled Kind = "move_to_unscheduled"
	KindRearrangeDay      Kind = "rearrange_day"
	KindQueryTasks        Kind = "query_tasks"
	KindQueryAnchors      Kind = "query_anchors"
	KindQueryFreeWindows  Kind = "query_free_windows"
	KindClarification     Kind = "request_clarification"
	KindInfeasible        Kind = "report_infeasible"
)

var (
	ErrUnknownKind     = errors.New("unknown intent kind")
	ErrMissingField    = errors.New("missing intent field")
	ErrMalformedIntent = errors.New("malformed intent payload")
)

// Intent is one structured schedule instruction. Each kind uses only the
// fields it needs; Validate enforces that contract.
type Intent struct {
	Kind Kind `json:"kind"`

	// Create/edit payload.
	Title       string `json:"title,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	Category    string `json:"category,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Recurrence  string `json:"recurrence,omitempty"`

	// Reference is the free-text pointer at an existing commitment,
	// resolved by the fuzzy resolver before any mutation.
	Reference string `json:"reference,omitempty"`

	// When is the requested time for create/reschedule.
	When *TimeSpec `json:"when,omitempty"`

	// Date selects the day for queries and rearrangement (2006-01-02).
	// Empty means today.
	Date string `json:"date,omitempty"`

	// Query filters.
	Completed  *bool `json:"completed,omitempty"`
	FutureOnly bool  `json:"future_only,omitempty"`

	// Strategy names the rearrangement algorithm.
	Strategy string `json:"strategy,omitempty"`

	// Confirmed re-submits a destructive operation.
	Confirmed bool `json:"confirmed,omitempty"`

	// Message carries pass-through text for clarification/infeasible.
	Message string `json:"message,omitempty"`
}

// Parse decodes and validates an intent payload. Unknown fields and
// unknown kinds are rejected here, never inside the core.
func Parse(data []byte) (Intent, error) {
	var in Intent
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrMalformedIntent, err)
	}
	if err := in.Validate(); err != nil {
		return Intent{}, err
	}
	return in, nil
}

// Validate checks that the fields required by the intent's kind are set.
func (in Intent) Validate() error {
	switch in.Kind {
	case KindCreateTask:
		if in.Title == "" {
			return fmt.Errorf("%w: title", ErrMissingField)
		}
		if in.DurationMin <= 0 {
			return fmt.Errorf("%w: duration_min", ErrMissingField)
		}
	case KindEditTask, KindDeleteTask, KindCompleteTask, KindUncompleteTask, KindMoveToUnscheduled:
		if in.Reference == "" {
			return fmt.Errorf("%w: reference", ErrMissingField)
		}
	case KindRescheduleTask:
		if in.Reference == "" {
			return fmt.Errorf("%w: reference", ErrMissingField)
		}
		if in.When == nil || in.When.IsZero() {
			return fmt.Errorf("%w: when", ErrMissingField)
		}
	case KindRearrangeDay, KindQueryTasks, KindQueryAnchors, KindQueryFreeWindows:
		// Day selector and filters are all optional.
	case KindClarification, KindInfeasible:
		if in.Message == "" {
			return fmt.Errorf("%w: message", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, in.Kind)
	}
	if in.When != nil {
		if err := in.When.Validate(); err != nil {
			return err
		}
	}
	return nil
}
