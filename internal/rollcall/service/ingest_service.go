package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sehajsb/rollcall/internal/calendar"
	"github.com/sehajsb/rollcall/internal/rollcall/gate"
	"github.com/sehajsb/rollcall/internal/rollcall/store"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

var (
	ErrInvalidSourceID = errors.New("source_id is required")
	ErrInvalidIdentity = errors.New("identity is required")
)

// Drop / accept reasons reported back to the producer.
const (
	ReasonRecorded        = "recorded"
	ReasonUnknownIdentity = "unknown_identity"
	ReasonLowConfidence   = "low_confidence"
	ReasonCooldown        = "cooldown"
)

// IngestService drives the attendance pipeline for one observation at a
// time: sentinel and confidence filtering, period resolution, lateness
// classification, dedup gating and the ledger append.
type IngestService struct {
	registry      *SourceRegistry
	cal           *calendar.Calendar
	gate          *gate.Gate
	events        store.AttendanceEventStore
	minConfidence float64

	// mu makes gate-check, append and gate-commit one critical section so
	// concurrent producers cannot slip two events for the same
	// (identity, period) key inside one cooldown window.
	mu sync.Mutex
}

func NewIngestService(
	reg *SourceRegistry,
	cal *calendar.Calendar,
	g *gate.Gate,
	events store.AttendanceEventStore,
	minConfidence float64,
) *IngestService {
	return &IngestService{
		registry:      reg,
		cal:           cal,
		gate:          g,
		events:        events,
		minConfidence: minConfidence,
	}
}

// Observe classifies, gates and records one observation. The gate's
// last-accepted timestamp is committed only after the ledger append
// succeeds, so a persistence failure loses at most this one ping; the next
// observation inside the cooldown window retries instead of being
// suppressed. Double-counting is never possible in this ordering.
func (s *IngestService) Observe(ctx context.Context, req types.ObservationRequest) (types.ObservationResponse, error) {
	now := time.Now().UTC()

	sourceID := strings.TrimSpace(req.SourceID)
	identity := strings.TrimSpace(req.Identity)

	if sourceID == "" {
		return types.ObservationResponse{}, ErrInvalidSourceID
	}
	if identity == "" {
		return types.ObservationResponse{}, ErrInvalidIdentity
	}

	known, err := s.registry.IsKnown(ctx, sourceID)
	if err != nil {
		return types.ObservationResponse{}, err
	}
	_ = s.registry.NoteSeen(ctx, sourceID, known)

	resp := types.ObservationResponse{
		OK:          true,
		KnownSource: known,
		Identity:    identity,
		ServerTime:  now.Format(time.RFC3339Nano),
	}

	// The no-match sentinel never reaches the gate or the ledger.
	if types.IsUnknownIdentity(identity) {
		resp.Reason = ReasonUnknownIdentity
		return resp, nil
	}

	if req.Confidence < s.minConfidence {
		resp.Reason = ReasonLowConfidence
		return resp, nil
	}

	observedAt := now
	if t := parseOptionalTimestamp(req.ObservedAt); t != nil {
		observedAt = *t
	}

	res := s.cal.Resolve(observedAt)
	resp.Period = res.Period

	// Lateness only exists inside a known period's window.
	var lateMinutes *int
	if res.GraceDeadline != nil && observedAt.After(*res.GraceDeadline) {
		m := minutesLate(observedAt.Sub(*res.GraceDeadline))
		lateMinutes = &m
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Allow(identity, res.Period, observedAt) {
		resp.Reason = ReasonCooldown
		return resp, nil
	}

	rec := store.AttendanceEvent{
		EventID:     uuid.NewString(),
		Identity:    identity,
		Confidence:  req.Confidence,
		ObservedAt:  observedAt,
		Period:      res.Period,
		LateMinutes: lateMinutes,
		SourceID:    sourceID,
		ReceivedAt:  now,
	}
	if err := s.events.Append(ctx, rec); err != nil {
		return types.ObservationResponse{}, err
	}

	// Commit the gate only now that the event is durable.
	s.gate.Commit(identity, res.Period, observedAt)

	resp.Accepted = true
	resp.Reason = ReasonRecorded
	resp.LateMinutes = lateMinutes
	resp.EventID = rec.EventID
	return resp, nil
}

// minutesLate converts a positive delay past the grace deadline into whole
// minutes, rounded up so any post-deadline observation is at least 1.
func minutesLate(d time.Duration) int {
	return int((d + time.Minute - 1) / time.Minute)
}

// parseOptionalTimestamp attempts to parse a device-reported timestamp.
// Returns nil if the string is empty or unparseable.
func parseOptionalTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		u := t.UTC()
		return &u
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		u := t.UTC()
		return &u
	}
	return nil
}
