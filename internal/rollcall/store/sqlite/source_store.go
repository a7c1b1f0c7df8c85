package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/sehajsb/rollcall/internal/db"
)

type SourceStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewSourceStore(db *sql.DB, writer *dbpkg.Worker) *SourceStore {
	return &SourceStore{db: db, writer: writer}
}

// IsKnown: a source is known when it exists and is enabled. In prod an
// admin (or the dev seeder) enables sources explicitly.
func (s *SourceStore) IsKnown(ctx context.Context, sourceID string) (bool, error) {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return false, nil
	}

	var enabled int
	err := s.db.QueryRowContext(ctx, `
SELECT enabled FROM sources WHERE source_id = ?;
`, sourceID).Scan(&enabled)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("IsKnown query: %w", err)
	}
	return enabled == 1, nil
}

// MarkSeen: ensure the source row exists (even if unknown) and update
// last_seen.
func (s *SourceStore) MarkSeen(ctx context.Context, sourceID string, _ bool, t time.Time) error {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return nil
	}
	if t.IsZero() {
		t = time.Now().UTC()
	}
	ms := t.UTC().UnixMilli()

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := ensureSource(ctx, tx, sourceID, ms); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE sources
SET last_seen_at_ms = ?,
    updated_at_ms   = ?
WHERE source_id = ?;
`, ms, ms, sourceID); err != nil {
			return fmt.Errorf("MarkSeen update source: %w", err)
		}

		return nil
	})
}
