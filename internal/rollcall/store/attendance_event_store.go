package store

import (
	"context"
	"time"
)

// AttendanceEvent is one accepted observation, enriched with period and
// lateness metadata. Events are immutable once written; corrections are
// appended, never edited in place.
//
// LateMinutes is nil when the observation fell inside its period's grace
// window, or when no period matched.
type AttendanceEvent struct {
	EventID     string
	Identity    string
	Confidence  float64
	ObservedAt  time.Time
	Period      string
	LateMinutes *int
	SourceID    string
	ReceivedAt  time.Time
}

// AttendanceEventStore owns the append-only attendance ledger. Append is
// the only mutating operation; every reader works from a Snapshot.
type AttendanceEventStore interface {
	Append(ctx context.Context, rec AttendanceEvent) error
	Snapshot(ctx context.Context) ([]AttendanceEvent, error)
}
