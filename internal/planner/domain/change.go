package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleChange is an audit record of one mutation performed by a
// rearrangement strategy.
type ScheduleChange struct {
	CommitmentID    uuid.UUID  `json:"commitment_id"`
	CommitmentTitle string     `json:"commitment_title"`
	OldStart        *time.Time `json:"old_start,omitempty"`
	NewStart        time.Time  `json:"new_start"`
	Reason          string     `json:"reason"`
}
