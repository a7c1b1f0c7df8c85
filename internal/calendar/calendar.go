// Package calendar resolves timestamps against a static table of named
// daily periods. The table is configured once (from YAML or code) and the
// Calendar itself is read-only after construction.
package calendar

import (
	"fmt"
	"time"
)

// UnknownPeriod is returned when a timestamp falls outside every
// configured window. Lateness is never computed for it.
const UnknownPeriod = "Unknown"

// DefaultGrace is how long after a period starts an observation still
// counts as on-time, unless the period overrides it.
const DefaultGrace = 10 * time.Minute

// Period is a named window within a single day cycle. Start and End are
// offsets from midnight; the window is half-open: [Start, End).
type Period struct {
	Name  string
	Start time.Duration
	End   time.Duration

	// Grace overrides the calendar-wide grace when > 0.
	Grace time.Duration
}

// Resolution is the outcome of resolving a timestamp. GraceDeadline is nil
// when the timestamp matched no period.
type Resolution struct {
	Period        string
	GraceDeadline *time.Time
}

type Calendar struct {
	periods []Period
	grace   time.Duration
}

// New builds a Calendar from an ordered period table. The table must be
// mutually exclusive; this is the caller's invariant and is not checked
// here. A grace of 0 falls back to DefaultGrace.
func New(periods []Period, grace time.Duration) (*Calendar, error) {
	if grace <= 0 {
		grace = DefaultGrace
	}
	for i, p := range periods {
		if p.Name == "" {
			return nil, fmt.Errorf("period %d: name is required", i)
		}
		if p.End <= p.Start {
			return nil, fmt.Errorf("period %q: end %s is not after start %s", p.Name, p.End, p.Start)
		}
	}
	return &Calendar{periods: periods, grace: grace}, nil
}

// Resolve truncates t to its time-of-day and returns the first period whose
// [Start, End) window contains it, along with the period's grace deadline
// anchored to t's day. No match resolves to UnknownPeriod with a nil
// deadline.
func (c *Calendar) Resolve(t time.Time) Resolution {
	if t.IsZero() {
		return Resolution{Period: UnknownPeriod}
	}

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	dayOffset := t.Sub(midnight)

	for _, p := range c.periods {
		if dayOffset >= p.Start && dayOffset < p.End {
			grace := p.Grace
			if grace <= 0 {
				grace = c.grace
			}
			deadline := midnight.Add(p.Start + grace)
			return Resolution{Period: p.Name, GraceDeadline: &deadline}
		}
	}
	return Resolution{Period: UnknownPeriod}
}

// Periods returns a copy of the configured table, in table order.
func (c *Calendar) Periods() []Period {
	out := make([]Period, len(c.periods))
	copy(out, c.periods)
	return out
}
