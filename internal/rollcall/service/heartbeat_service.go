package service

import (
	"context"
	"strings"
	"time"

	"github.com/sehajsb/rollcall/internal/rollcall/store"
	"github.com/sehajsb/rollcall/internal/rollcall/types"
)

type HeartbeatService struct {
	heartbeatStore store.HeartbeatStore
	registry       *SourceRegistry
}

func NewHeartbeatService(hs store.HeartbeatStore, reg *SourceRegistry) *HeartbeatService {
	return &HeartbeatService{heartbeatStore: hs, registry: reg}
}

func (s *HeartbeatService) Record(ctx context.Context, req types.HeartbeatRequest) (types.HeartbeatResponse, error) {
	sourceID := strings.TrimSpace(req.SourceID)
	if sourceID == "" {
		return types.HeartbeatResponse{}, ErrInvalidSourceID
	}

	known, err := s.registry.IsKnown(ctx, sourceID)
	if err != nil {
		return types.HeartbeatResponse{}, err
	}
	_ = s.registry.NoteSeen(ctx, sourceID, known)

	rec := store.HeartbeatRecord{
		ReceivedAt: time.Now().UTC(),
		Request:    req,
	}

	if err := s.heartbeatStore.RecordHeartbeat(ctx, sourceID, rec); err != nil {
		return types.HeartbeatResponse{}, err
	}

	return types.HeartbeatResponse{
		OK:         true,
		Known:      known,
		SourceID:   sourceID,
		ServerTime: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
