package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/store"
)

// AttendanceEventStore is an in-memory append-only attendance ledger.
// It is intended for use in tests and dev environments.
type AttendanceEventStore struct {
	mu     sync.Mutex
	events []store.AttendanceEvent
}

func NewAttendanceEventStore() *AttendanceEventStore {
	return &AttendanceEventStore{}
}

func (s *AttendanceEventStore) Append(_ context.Context, rec store.AttendanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	s.events = append(s.events, rec)
	return nil
}

// Snapshot returns a copy of the ledger in insertion order.
func (s *AttendanceEventStore) Snapshot(_ context.Context) ([]store.AttendanceEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.AttendanceEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}
