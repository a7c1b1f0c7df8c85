package gate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sehajsb/rollcall/internal/rollcall/gate"
)

var base = time.Date(2026, 3, 2, 8, 31, 0, 0, time.UTC)

func TestAllow_FirstObservationAccepted(t *testing.T) {
	g := gate.New(10 * time.Minute)

	assert.True(t, g.Allow("Sehaj", "1", base))
}

func TestAllow_WithinCooldownRejected(t *testing.T) {
	g := gate.New(10 * time.Minute)

	g.Commit("Sehaj", "1", base)
	assert.False(t, g.Allow("Sehaj", "1", base.Add(4*time.Minute)))
}

func TestAllow_AfterCooldownAccepted(t *testing.T) {
	g := gate.New(10 * time.Minute)

	g.Commit("Sehaj", "1", base)
	assert.True(t, g.Allow("Sehaj", "1", base.Add(10*time.Minute)), "exactly the cooldown is enough")
	assert.True(t, g.Allow("Sehaj", "1", base.Add(15*time.Minute)))
}

func TestAllow_KeyedPerPeriod(t *testing.T) {
	g := gate.New(10 * time.Minute)

	// Flagged in period 2, reappears two minutes later in period 3:
	// the new period gets a fresh event, not a suppressed one.
	g.Commit("Parker", "2", base)
	assert.False(t, g.Allow("Parker", "2", base.Add(2*time.Minute)))
	assert.True(t, g.Allow("Parker", "3", base.Add(2*time.Minute)))
}

func TestAllow_KeyedPerIdentity(t *testing.T) {
	g := gate.New(10 * time.Minute)

	g.Commit("Parker", "1", base)
	assert.True(t, g.Allow("Sehaj", "1", base.Add(time.Second)))
}

func TestAllow_RejectionHasNoSideEffect(t *testing.T) {
	g := gate.New(10 * time.Minute)

	g.Commit("Sehaj", "1", base)

	// Repeated rejected polls must not push the window forward; a poll at
	// the cooldown boundary is still accepted.
	for i := 1; i < 10; i++ {
		assert.False(t, g.Allow("Sehaj", "1", base.Add(time.Duration(i)*time.Minute)))
	}
	assert.True(t, g.Allow("Sehaj", "1", base.Add(10*time.Minute)))
}

func TestNew_ZeroCooldownUsesDefault(t *testing.T) {
	g := gate.New(0)
	assert.Equal(t, gate.DefaultCooldown, g.Cooldown())
}
