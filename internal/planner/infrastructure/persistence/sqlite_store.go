package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mizanapp/mizan/internal/planner/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS commitments (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	duration_min    INTEGER NOT NULL,
	category        TEXT NOT NULL,
	scheduled_start TEXT,
	completed       INTEGER NOT NULL DEFAULT 0,
	recurrence      TEXT NOT NULL DEFAULT '',
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commitments_scheduled_start ON commitments(scheduled_start);
`

// SQLiteStore implements domain.CommitmentStore over a local SQLite file.
// The borrowed collection is the set returned by the last FetchAll; Save
// upserts every borrowed and staged commitment and applies staged
// deletions inside one transaction.
type SQLiteStore struct {
	db *sql.DB

	mu       sync.Mutex
	borrowed map[uuid.UUID]*domain.Commitment
	inserted []*domain.Commitment
	removed  []uuid.UUID
}

// OpenSQLiteStore opens (and migrates) a SQLite-backed store.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteStore{
		db:       db,
		borrowed: make(map[uuid.UUID]*domain.Commitment),
	}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// FetchAll loads the full commitment collection and borrows it.
func (s *SQLiteStore) FetchAll(ctx context.Context) ([]*domain.Commitment, error) {
	rows, err := s.db.QueryContext(ctx, `
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
		c, err := scanSQLiteCommitment(rows)
		if err != nil {
			return nil, err
		}
		s.borrowed[c.ID()] = c
		all = append(all, c)
	}
	return all, rows.Err()
}

// Insert stages a new commitment for the next Save.
func (s *SQLiteStore) Insert(ctx context.Context, c *domain.Commitment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, c)
	return nil
}

// Remove stages a deletion for the next Save.
func (s *SQLiteStore) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, id)
	delete(s.borrowed, id)
	return nil
}

// Save flushes the borrowed collection and staged mutations atomically.
func (s *SQLiteStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer tx.Rollback()

	for _, id := range s.removed {
		if _, err := tx.ExecContext(ctx, `DELETE FROM commitments WHERE id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete commitment: %w", err)
		}
	}
	for _, c := range s.borrowed {
		if err := upsertSQLiteCommitment(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, c := range s.inserted {
		if err := upsertSQLiteCommitment(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit flush: %w", err)
	}

	for _, c := range s.inserted {
		s.borrowed[c.ID()] = c
	}
	s.inserted = nil
	s.removed = nil
	return nil
}

func upsertSQLiteCommitment(ctx context.Context, tx *sql.Tx, c *domain.Commitment) error {
	var start any
	if s := c.ScheduledStart(); s != nil {
		start = s.Format(time.RFC3339)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO commitments
			(id, title, duration_min, category, scheduled_start,
			 completed, recurrence, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			duration_min = excluded.duration_min,
			category = excluded.category,
			scheduled_start = excluded.scheduled_start,
			completed = excluded.completed,
			recurrence = excluded.recurrence,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		c.ID().String(),
		c.Title(),
		c.DurationMinutes(),
		string(c.Category()),
		start,
		boolToInt(c.IsCompleted()),
		c.Recurrence(),
		c.Notes(),
		c.CreatedAt().Format(time.RFC3339),
		c.UpdatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert commitment %s: %w", c.ID(), err)
	}
	return nil
}

func scanSQLiteCommitment(rows *sql.Rows) (*domain.Commitment, error) {
	var (
		id, title, category, recurrence, notes string
		durationMin, completed                 int
		scheduledStart                         sql.NullString
		createdAt, updatedAt                   string
	)
	if err := rows.Scan(&id, &title, &durationMin, &category, &scheduledStart,
		&completed, &recurrence, &notes, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scan commitment: %w", err)
	}

	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse commitment id: %w", err)
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	var start *time.Time
	if scheduledStart.Valid && scheduledStart.String != "" {
		t, err := time.Parse(time.RFC3339, scheduledStart.String)
		if err != nil {
			return nil, fmt.Errorf("parse scheduled_start: %w", err)
		}
		local := t.Local()
		start = &local
	}

	return domain.RehydrateCommitment(
		cid, title,
		time.Duration(durationMin)*time.Minute,
		domain.Category(category),
		start,
		completed != 0,
		recurrence, notes,
		created, updated,
	), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
