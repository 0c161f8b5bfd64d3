package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS commitments (
	id              UUID PRIMARY KEY,
	title           TEXT NOT NULL,
	duration_min    INTEGER NOT NULL,
	category        TEXT NOT NULL,
	scheduled_start TIMESTAMPTZ,
	completed       BOOLEAN NOT NULL DEFAULT FALSE,
	recurrence      TEXT NOT NULL DEFAULT '',
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commitments_scheduled_start ON commitments(scheduled_start);
`

// PostgresStore implements domain.CommitmentStore over PostgreSQL with
// the same borrowed-collection flush semantics as the SQLite store.
type PostgresStore struct {
	pool *pgxpool.Pool

	mu       sync.Mutex
	borrowed map[uuid.UUID]*domain.Commitment
	inserted []*domain.Commitment
	removed  []uuid.UUID
}

// OpenPostgresStore connects to Postgres and ensures the schema exists.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &PostgresStore{
		pool:     pool,
		borrowed: make(map[uuid.UUID]*domain.Commitment),
	}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// FetchAll loads the full commitment collection and borrows it.
func (s *PostgresStore) FetchAll(ctx context.Context) ([]*domain.Commitment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, duration_min, category, scheduled_start,
		       completed, recurrence, notes, created_at, updated_at
		FROM commitments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("fetch commitments: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.borrowed = make(map[uuid.UUID]*domain.Commitment)

	var all []*domain.Commitment
	for rows.Next() {
		var (
			id                                 uuid.UUID
			title, category, recurrence, notes string
			durationMin                        int
			scheduledStart                     *time.Time
			completed                          bool
			createdAt, updatedAt               time.Time
		)
		if err := rows.Scan(&id, &title, &durationMin, &category, &scheduledStart,
			&completed, &recurrence, &notes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		c := domain.RehydrateCommitment(
			id, title,
			time.Duration(durationMin)*time.Minute,
			domain.Category(category),
			scheduledStart,
			completed,
			recurrence, notes,
			createdAt, updatedAt,
		)
		s.borrowed[c.ID()] = c
		all = append(all, c)
	}
	return all, rows.Err()
}

// Insert stages a new commitment for the next Save.
func (s *PostgresStore) Insert(ctx context.Context, c *domain.Commitment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, c)
	return nil
}

// Remove stages a deletion for the next Save.
func (s *PostgresStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, id)
	delete(s.borrowed, id)
	return nil
}

// Save flushes the borrowed collection and staged mutations atomically.
func (s *PostgresStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, id := range s.removed {
		if _, err := tx.Exec(ctx, `DELETE FROM commitments WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete commitment: %w", err)
		}
	}
	for _, c := range s.borrowed {
		if err := upsertPostgresCommitment(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, c := range s.inserted {
		if err := upsertPostgresCommitment(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit flush: %w", err)
	}

	for _, c := range s.inserted {
		s.borrowed[c.ID()] = c
	}
	s.inserted = nil
	s.removed = nil
	return nil
}

func upsertPostgresCommitment(ctx context.Context, tx pgx.Tx, c *domain.Commitment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO commitments
			(id, title, duration_min, category, scheduled_start,
			 completed, recurrence, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			duration_min = EXCLUDED.duration_min,
			category = EXCLUDED.category,
			scheduled_start = EXCLUDED.scheduled_start,
			completed = EXCLUDED.completed,
			recurrence = EXCLUDED.recurrence,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`,
		c.ID(),
		c.Title(),
		c.DurationMinutes(),
		string(c.Category()),
		c.ScheduledStart(),
		c.IsCompleted(),
		c.Recurrence(),
		c.Notes(),
		c.CreatedAt(),
		c.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("upsert commitment %s: %w", c.ID(), err)
	}
	return nil
}
