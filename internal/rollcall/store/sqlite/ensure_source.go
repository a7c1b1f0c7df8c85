package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// ensureSource guarantees a sources row exists for the given sourceID so
// that foreign-key constraints from heartbeats and attendance events are
// satisfied.
//
// New rows start disabled — only an admin action (or the dev seeder)
// should set enabled=1.
//
// Must be called inside an existing transaction.
func ensureSource(ctx context.Context, tx *sql.Tx, sourceID string, nowMs int64) error {
	if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO sources(
  source_id, enabled, created_at_ms, updated_at_ms
) VALUES (?, 0, ?, ?);
`, sourceID, nowMs, nowMs); err != nil {
		return fmt.Errorf("ensureSource %s: %w", sourceID, err)
	}
	return nil
}
