package service

import (
	"context"
	"strings"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/store"
)

// SourceRegistry answers whether a camera source is known and records
// sightings of every source that talks to the server, known or not.
type SourceRegistry struct {
	store store.SourceStore
}

func NewSourceRegistry(st store.SourceStore) *SourceRegistry {
	return &SourceRegistry{store: st}
}

func (r *SourceRegistry) IsKnown(ctx context.Context, sourceID string) (bool, error) {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return false, nil
	}
	return r.store.IsKnown(ctx, sourceID)
}

func (r *SourceRegistry) NoteSeen(ctx context.Context, sourceID string, known bool) error {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		return nil
	}
	return r.store.MarkSeen(ctx, sourceID, known, time.Now().UTC())
}
