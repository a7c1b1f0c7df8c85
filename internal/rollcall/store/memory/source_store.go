package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

type SourceStore struct {
	mu    sync.RWMutex
	known map[string]struct{}
	seen  map[string]time.Time
}

func NewSourceStore(knownSources []string) *SourceStore {
	k := make(map[string]struct{}, len(knownSources))
	for _, s := range knownSources {
		s = strings.TrimSpace(s)
		if s != "" {
			k[s] = struct{}{}
		}
	}
	return &SourceStore{
		known: k,
		seen:  make(map[string]time.Time),
	}
}

func (s *SourceStore) IsKnown(_ context.Context, sourceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.known[sourceID]
	return ok, nil
}

func (s *SourceStore) MarkSeen(_ context.Context, sourceID string, _ bool, t time.Time) error {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[sourceID] = t
	return nil
}
