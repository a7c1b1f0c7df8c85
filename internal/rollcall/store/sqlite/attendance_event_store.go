package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/sehajsb/rollcall/internal/db"
	"github.com/sehajsb/rollcall/internal/rollcall/store"
)

type AttendanceEventStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAttendanceEventStore(db *sql.DB, writer *dbpkg.Worker) *AttendanceEventStore {
	return &AttendanceEventStore{db: db, writer: writer}
}

func (s *AttendanceEventStore) Append(ctx context.Context, rec store.AttendanceEvent) error {
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}

	observedMs := rec.ObservedAt.UTC().UnixMilli()
	receivedMs := rec.ReceivedAt.UTC().UnixMilli()

	var lateMinutes any
	if rec.LateMinutes != nil {
		lateMinutes = *rec.LateMinutes
	}

	var sourceID any
	if rec.SourceID != "" {
		sourceID = rec.SourceID
	}

	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if sourceID != nil {
			if err := ensureSource(ctx, tx, rec.SourceID, receivedMs); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO attendance_events(
  event_id, identity, confidence, observed_at_ms, period,
  late_minutes, source_id, received_at_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`,
			rec.EventID, rec.Identity, rec.Confidence, observedMs, rec.Period,
			lateMinutes, sourceID, receivedMs,
		); err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}

		return nil
	})
}

// Snapshot reads the whole ledger in insertion order.
func (s *AttendanceEventStore) Snapshot(ctx context.Context) ([]store.AttendanceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, identity, confidence, observed_at_ms, period,
       late_minutes, source_id, received_at_ms
FROM attendance_events
ORDER BY id ASC;
`)
	if err != nil {
		return nil, fmt.Errorf("Snapshot query: %w", err)
	}
	defer rows.Close()

	var out []store.AttendanceEvent
	for rows.Next() {
		var (
			rec         store.AttendanceEvent
			observedMs  int64
			receivedMs  int64
			lateMinutes sql.NullInt64
			sourceID    sql.NullString
		)
		if err := rows.Scan(
			&rec.EventID, &rec.Identity, &rec.Confidence, &observedMs, &rec.Period,
			&lateMinutes, &sourceID, &receivedMs,
		); err != nil {
			return nil, fmt.Errorf("Snapshot scan: %w", err)
		}

		rec.ObservedAt = time.UnixMilli(observedMs).UTC()
		rec.ReceivedAt = time.UnixMilli(receivedMs).UTC()
		if lateMinutes.Valid {
			m := int(lateMinutes.Int64)
			rec.LateMinutes = &m
		}
		if sourceID.Valid {
			rec.SourceID = sourceID.String
		}

		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Snapshot rows: %w", err)
	}
	return out, nil
}
