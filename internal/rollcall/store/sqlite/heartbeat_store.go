package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/sehajsb/rollcall/internal/db"
	"github.com/sehajsb/rollcall/internal/rollcall/store"
)

type HeartbeatStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewHeartbeatStore(db *sql.DB, writer *dbpkg.Worker) *HeartbeatStore {
	return &HeartbeatStore{db: db, writer: writer}
}

func (s *HeartbeatStore) RecordHeartbeat(ctx context.Context, sourceID string, rec store.HeartbeatRecord) error {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return nil
	}

	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	recvMs := rec.ReceivedAt.UTC().UnixMilli()

	fw := strings.TrimSpace(rec.Request.FirmwareVersion)
	ip := strings.TrimSpace(rec.Request.IP)

	var uptimeMs any
	if rec.Request.UptimeSeconds != 0 {
		uptimeMs = int64(rec.Request.UptimeSeconds) * 1000
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := ensureSource(ctx, tx, sourceID, recvMs); err != nil {
			return err
		}

		// Insert heartbeat event (append-only)
		if _, err := tx.ExecContext(ctx, `
INSERT INTO source_heartbeats(
  source_id, received_at_ms, uptime_ms, fw_version, ip
) VALUES (?, ?, ?, ?, ?);
`, sourceID, recvMs, uptimeMs, fw, ip); err != nil {
			return fmt.Errorf("RecordHeartbeat insert heartbeat: %w", err)
		}

		// Update source snapshot (fast "current status" queries)
		if _, err := tx.ExecContext(ctx, `
UPDATE sources
SET last_seen_at_ms = ?,
    last_ip = ?,
    last_fw_version = ?,
    updated_at_ms = ?
WHERE source_id = ?;
`, recvMs, ip, fw, recvMs, sourceID); err != nil {
			return fmt.Errorf("RecordHeartbeat update source snapshot: %w", err)
		}

		return nil
	})
}

// PruneOlderThan deletes heartbeat rows with received_at_ms before the
// given cutoff time. Returns the number of rows deleted.
//
// Uses the idx_heartbeats_time index for an efficient range scan.
func (s *HeartbeatStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM source_heartbeats
WHERE received_at_ms < ?;
`, cutoffMs)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
