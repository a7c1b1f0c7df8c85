package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type SeedDevOptions struct {
	// Optional: config-known camera sources to pre-create in dev.
	KnownSources []string
}

// SeedDev creates a starter camera source plus any config-known sources so
// a dev database accepts observations immediately.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC().UnixMilli()

	if _, err := db.ExecContext(ctx, `
INSERT INTO sources(
  source_id, display_name, enabled, created_at_ms, updated_at_ms
) VALUES ('cam-001', 'Classroom Camera', 1, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
  display_name = excluded.display_name,
  enabled = 1,
  updated_at_ms = excluded.updated_at_ms;
`, now, now); err != nil {
		return fmt.Errorf("seed source cam-001: %w", err)
	}

	for _, sid := range opt.KnownSources {
		sid = strings.TrimSpace(sid)
		if sid == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, `
INSERT INTO sources(source_id, enabled, created_at_ms, updated_at_ms)
VALUES (?, 1, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
  enabled = 1,
  updated_at_ms = excluded.updated_at_ms;
`, sid, now, now); err != nil {
			return fmt.Errorf("seed source %s: %w", sid, err)
		}
	}

	return nil
}
