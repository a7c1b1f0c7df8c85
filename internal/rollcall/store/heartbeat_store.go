package store

import (
	"context"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

type HeartbeatRecord struct {
	ReceivedAt time.Time
	Request    types.HeartbeatRequest
}

type HeartbeatStore interface {
	RecordHeartbeat(ctx context.Context, sourceID string, rec HeartbeatRecord) error
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
