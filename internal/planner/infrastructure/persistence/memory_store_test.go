package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/planner/domain"
	"github.com/mizanapp/mizan/internal/planner/infrastructure/persistence"
)

func newCommitment(t *testing.T, title string) *domain.Commitment {
	t.Helper()
	c, err := domain.NewCommitment(title, 30*time.Minute, domain.CategoryPersonal)
	require.NoError(t, err)
	return c
}

func TestMemoryStore_InsertAndFetchAll(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()

	first := newCommitment(t, "first")
	second := newCommitment(t, "second")
	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Title(), "insertion order is preserved")
	assert.Equal(t, "second", all[1].Title())
}

func TestMemoryStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	c := newCommitment(t, "doomed")
	require.NoError(t, store.Insert(ctx, c))

	require.NoError(t, store.Remove(ctx, c.ID()))
	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryStore_Remove_Missing(t *testing.T) {
	store := persistence.NewMemoryStore()
	err := store.Remove(context.Background(), uuid.New())
	assert.ErrorIs(t, err, persistence.ErrCommitmentMissing)
}

func TestMemoryStore_Save_FailHook(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	require.NoError(t, store.Save(ctx))

	boom := errors.New("disk full")
	store.FailSaveWith(boom)
	assert.ErrorIs(t, store.Save(ctx), boom)
}

func TestMemoryStore_MutationsVisibleAfterFetch(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	c := newCommitment(t, "borrowed")
	require.NoError(t, store.Insert(ctx, c))

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	all[0].MarkCompleted()
	require.NoError(t, store.Save(ctx))

	again, err := store.FetchAll(ctx)
	require.NoError(t, err)
	assert.True(t, again[0].IsCompleted(), "the store hands out the entities it owns")
}
