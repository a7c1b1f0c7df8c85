package store

import (
	"context"
	"time"
)

type SourceRecord struct {
	SourceID string
	Known    bool
	LastSeen time.Time
}

type SourceStore interface {
	IsKnown(ctx context.Context, sourceID string) (bool, error)
	MarkSeen(ctx context.Context, sourceID string, known bool, t time.Time) error
}
