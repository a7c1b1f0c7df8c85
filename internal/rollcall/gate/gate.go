// Package gate rate-limits repeat observations of the same identity within
// the same period. The upstream detector polls many times per second;
// without this gate the ledger would receive one row per poll tick per
// visible face.
package gate

import (
	"sync"
	"time"
)

// DefaultCooldown is the minimum gap between accepted observations for the
// same (identity, period) key.
const DefaultCooldown = 10 * time.Minute

// Gate tracks the last accepted observation per (identity, period). The
// check and the state update are split into Allow and Commit so the caller
// can persist the event first and update the gate only on success — a crash
// in between loses at most one ping and never double-counts.
type Gate struct {
	cooldown time.Duration

	mu   sync.Mutex
	last map[string]map[string]time.Time // identity -> period -> last accepted
}

// New returns a Gate with the given cooldown. A cooldown of 0 falls back
// to DefaultCooldown.
func New(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		cooldown: cooldown,
		last:     make(map[string]map[string]time.Time),
	}
}

// Allow reports whether an observation of identity in period at now would
// be accepted. It has no side effect; rejection is idempotent.
func (g *Gate) Allow(identity, period string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	periods, ok := g.last[identity]
	if !ok {
		return true
	}
	prev, ok := periods[period]
	if !ok {
		return true
	}
	return now.Sub(prev) >= g.cooldown
}

// Commit records now as the last accepted timestamp for (identity, period).
// Call only after the corresponding event has been durably persisted.
func (g *Gate) Commit(identity, period string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	periods, ok := g.last[identity]
	if !ok {
		periods = make(map[string]time.Time)
		g.last[identity] = periods
	}
	periods[period] = now
}

// Cooldown returns the configured cooldown window.
func (g *Gate) Cooldown() time.Duration {
	return g.cooldown
}
