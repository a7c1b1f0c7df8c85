package service

import (
	"context"
	"sort"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/report"
	"github.com/sehajsb/rollcall/internal/rollcall/store"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

// ReportService reconstructs the per-person status view from a ledger
// snapshot. Every query re-reduces the snapshot; nothing is cached.
type ReportService struct {
	events store.AttendanceEventStore
	roster []string
}

// NewReportService takes the roster of identities that should appear in
// the report even with zero observations; they surface as Absent.
func NewReportService(events store.AttendanceEventStore, roster []string) *ReportService {
	return &ReportService{events: events, roster: roster}
}

// CanonicalRecords reduces the current ledger snapshot to one record per
// identity. The returned map supports O(1) lookup by identity for the
// report view's expand action.
func (s *ReportService) CanonicalRecords(ctx context.Context) (map[string]report.CanonicalRecord, error) {
	ledger, err := s.events.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return report.Reduce(ledger), nil
}

// Detail returns the canonical record and status for one identity.
// Roster identities with no events come back as Absent; identities the
// server has never heard of report ok=false.
func (s *ReportService) Detail(ctx context.Context, identity string) (report.CanonicalRecord, report.Status, bool, error) {
	records, err := s.CanonicalRecords(ctx)
	if err != nil {
		return report.CanonicalRecord{}, report.Status{}, false, err
	}

	if rec, found := records[identity]; found {
		return rec, report.Classify(rec), true, nil
	}
	for _, name := range s.roster {
		if name == identity {
			rec := report.CanonicalRecord{Identity: identity}
			return rec, report.Classify(rec), true, nil
		}
	}
	return report.CanonicalRecord{}, report.Status{}, false, nil
}

// Rows produces the full report: every identity with ledger events plus
// every roster identity, classified and sorted by name. An empty slice
// with a nil error means the ledger is empty and the roster is too; the
// caller renders that as an explicit no-data state.
func (s *ReportService) Rows(ctx context.Context) ([]types.ReportRow, error) {
	records, err := s.CanonicalRecords(ctx)
	if err != nil {
		return nil, err
	}

	// Roster identities with no events classify as Absent.
	for _, name := range s.roster {
		if _, found := records[name]; !found {
			records[name] = report.CanonicalRecord{Identity: name}
		}
	}

	rows := make([]types.ReportRow, 0, len(records))
	for _, rec := range records {
		row := types.ReportRow{
			Identity:    rec.Identity,
			Status:      report.Classify(rec).String(),
			Period:      rec.Period,
			Confidence:  rec.Confidence,
			LateMinutes: rec.LateMinutes,
			SourceID:    rec.SourceID,
		}
		if rec.ObservedAt != nil {
			row.ObservedAt = rec.ObservedAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Identity < rows[j].Identity })
	return rows, nil
}
