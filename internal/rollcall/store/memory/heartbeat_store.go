package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/store"
)

// HeartbeatStore keeps camera heartbeat history in memory.
type HeartbeatStore struct {
	mu      sync.Mutex
	records []store.HeartbeatRecord
}

func NewHeartbeatStore() *HeartbeatStore {
	return &HeartbeatStore{}
}

func (s *HeartbeatStore) RecordHeartbeat(_ context.Context, sourceID string, rec store.HeartbeatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	rec.Request.SourceID = sourceID
	s.records = append(s.records, rec)
	return nil
}

func (s *HeartbeatStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, rec := range s.records {
		if rec.ReceivedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return deleted, nil
}
