package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CommitmentStore owns the commitment collection. The planner borrows the
// fetched collection for one dispatch call, stages mutations through
// Insert/Remove and field writes on the fetched entities, and commits them
// with Save. A dispatch call must hold the store exclusively until Save
// returns.
type CommitmentStore interface {
	// FetchAll returns the full commitment collection.
	FetchAll(ctx context.Context) ([]*Commitment, error)

	// Insert stages a new commitment.
	Insert(ctx context.Context, c *Commitment) error

	// Remove stages the deletion of a commitment.
	Remove(ctx context.Context, id uuid.UUID) error

	// Save flushes every staged mutation, including field writes on
	// fetched commitments. Nothing is considered committed before Save
	// returns nil.
	Save(ctx context.Context) error
}

// AnchorSource provides the day's anchor events, sorted by time, with
// location and calculation method already resolved upstream.
type AnchorSource interface {
	AnchorsFor(ctx context.Context, date time.Time) ([]AnchorEvent, error)
}
