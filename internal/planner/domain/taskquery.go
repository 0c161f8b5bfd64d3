package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskQuery is a conjunctive commitment filter. It backs both read
// queries and the resolution of a free-text reference before a mutation.
// Title matching is fuzzy (see Resolver); every other field is exact.
type TaskQuery struct {
	TitleContains string
	Date          *time.Time
	Category      *Category
	Completed     *bool
	ID            *uuid.UUID
}

// IsZero reports whether the query filters on nothing.
func (q TaskQuery) IsZero() bool {
	return q.TitleContains == "" && q.Date == nil && q.Category == nil && q.Completed == nil && q.ID == nil
}

// matchesExact applies every filter except the fuzzy title one.
func (q TaskQuery) matchesExact(c *Commitment) bool {
	if q.ID != nil && c.ID() != *q.ID {
		return false
	}
	if q.Category != nil && c.Category() != *q.Category {
		return false
	}
	if q.Completed != nil && c.IsCompleted() != *q.Completed {
		return false
	}
	if q.Date != nil && !c.OccursOn(*q.Date) {
		return false
	}
	return true
}
