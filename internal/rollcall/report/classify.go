package report

import "fmt"

// StatusKind tags an attendance status.
type StatusKind int

const (
	Absent StatusKind = iota
	Present
	Late
)

// Status is the classification of one canonical record. LateMinutes is
// meaningful only when Kind is Late.
type Status struct {
	Kind        StatusKind
	LateMinutes int
}

// Classify derives a status from a canonical record. Decision order is a
// precedence contract, not incidental:
//
//  1. positive LateMinutes wins over everything, even with a timestamp set
//  2. any timestamp means Present
//  3. otherwise Absent (a record with no observation, e.g. injected for a
//     roster identity that was never seen)
func Classify(rec CanonicalRecord) Status {
	if rec.LateMinutes != nil && *rec.LateMinutes > 0 {
		return Status{Kind: Late, LateMinutes: *rec.LateMinutes}
	}
	if rec.ObservedAt != nil {
		return Status{Kind: Present}
	}
	return Status{Kind: Absent}
}

// String formats the status for display. This is the only place a status
// becomes a string; everything upstream works with the tagged value.
func (s Status) String() string {
	switch s.Kind {
	case Late:
		return fmt.Sprintf("Late (%dm)", s.LateMinutes)
	case Present:
		return "Present"
	default:
		return "Absent"
	}
}
