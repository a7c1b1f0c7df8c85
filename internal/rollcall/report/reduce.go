// Package report collapses the attendance ledger into one canonical record
// per identity and derives a human-facing status from each record. Both
// operations are pure: they read a ledger snapshot and never mutate it.
package report

import (
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/store"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

// CanonicalRecord is the single representative event chosen per identity.
// ObservedAt is nil only for roster identities with zero ledger events,
// which the caller injects; the reducer itself always sets it.
type CanonicalRecord struct {
	Identity    string
	Confidence  float64
	ObservedAt  *time.Time
	Period      string
	LateMinutes *int
	SourceID    string
}

// Reduce folds the ledger into a map of identity to canonical record.
// For each identity the event with the greatest ObservedAt wins; ties go
// to the later ledger position. The unknown-identity sentinel is excluded
// before reduction.
//
// Deterministic for a given snapshot: running it twice yields equal maps.
func Reduce(ledger []store.AttendanceEvent) map[string]CanonicalRecord {
	out := make(map[string]CanonicalRecord)
	for _, ev := range ledger {
		if types.IsUnknownIdentity(ev.Identity) {
			continue
		}
		if cur, ok := out[ev.Identity]; ok && cur.ObservedAt.After(ev.ObservedAt) {
			continue
		}
		observed := ev.ObservedAt
		out[ev.Identity] = CanonicalRecord{
			Identity:    ev.Identity,
			Confidence:  ev.Confidence,
			ObservedAt:  &observed,
			Period:      ev.Period,
			LateMinutes: ev.LateMinutes,
			SourceID:    ev.SourceID,
		}
	}
	return out
}
