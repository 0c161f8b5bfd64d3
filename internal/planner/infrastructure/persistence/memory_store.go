// Package persistence implements the CommitmentStore port over SQLite,
// PostgreSQL, and memory. All three share the borrowed-collection
// contract: mutations are staged against the fetched entities and
// committed atomically by Save.
package persistence

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

var ErrCommitmentMissing = errors.New("commitment not in store")

// MemoryStore is an in-memory CommitmentStore for tests and ephemeral
// sessions. Save is a no-op commit since mutations apply directly.
type MemoryStore struct {
	mu          sync.Mutex
	commitments map[uuid.UUID]*domain.Commitment
	order       []uuid.UUID
	saveErr     error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{commitments: make(map[uuid.UUID]*domain.Commitment)}
}

// FailSaveWith makes every subsequent Save return err. Test hook.
func (s *MemoryStore) FailSaveWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// FetchAll returns the commitments in insertion order.
func (s *MemoryStore) FetchAll(ctx context.Context) ([]*domain.Commitment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*domain.Commitment, 0, len(s.order))
	for _, id := range s.order {
		if c, ok := s.commitments[id]; ok {
			all = append(all, c)
		}
	}
	return all, nil
}

// Insert stages a new commitment.
func (s *MemoryStore) Insert(ctx context.Context, c *domain.Commitment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.commitments[c.ID()]; !exists {
		s.order = append(s.order, c.ID())
	}
	s.commitments[c.ID()] = c
	return nil
}

// Remove stages the deletion of a commitment.
func (s *MemoryStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.commitments[id]; !ok {
		return ErrCommitmentMissing
	}
	delete(s.commitments, id)
	return nil
}

// Save commits staged mutations. In memory that is immediate.
func (s *MemoryStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}
