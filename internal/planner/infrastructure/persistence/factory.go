package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

// Store is a closeable CommitmentStore.
type Store interface {
	domain.CommitmentStore
	Close() error
}

// memoryStoreAdapter gives MemoryStore a Close method.
type memoryStoreAdapter struct{ *MemoryStore }

func (memoryStoreAdapter) Close() error { return nil }

// OpenStore picks a store implementation from the DSN scheme:
// postgres://, sqlite file path (default), or :memory:.
func OpenStore(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == ":memory:":
		return memoryStoreAdapter{NewMemoryStore()}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgresStore(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLiteStore(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("unsupported store dsn %q", dsn)
	default:
		// Bare paths are SQLite files.
		return OpenSQLiteStore(dsn)
	}
}
