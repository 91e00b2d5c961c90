package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlowmodeDisabledChannelNeverBlocks(t *testing.T) {
	tr := NewSlowmodeTracker()
	now := time.Now()

	for i := 0; i < 5; i++ {
		_, blocked := tr.Check("ch", "a", now)
		assert.False(t, blocked)
	}
}

func TestSlowmodeExactBoundaryIsAccepted(t *testing.T) {
	tr := NewSlowmodeTracker()
	tr.SetCooldown("ch", 10*time.Second)
	now := time.Now()

	_, blocked := tr.Check("ch", "a", now)
	assert.False(t, blocked)

	// Strictly less than the cooldown blocks.
	remaining, blocked := tr.Check("ch", "a", now.Add(10*time.Second-time.Millisecond))
	assert.True(t, blocked)
	assert.Equal(t, time.Millisecond, remaining)

	// Exactly the cooldown is accepted.
	_, blocked = tr.Check("ch", "a", now.Add(10*time.Second))
	assert.False(t, blocked)
}

func TestSlowmodeRejectionDoesNotResetClock(t *testing.T) {
	tr := NewSlowmodeTracker()
	tr.SetCooldown("ch", 10*time.Second)
	now := time.Now()

	tr.Check("ch", "a", now)

	// Hammering the channel while blocked must not extend the wait.
	for i := 1; i <= 5; i++ {
		_, blocked := tr.Check("ch", "a", now.Add(time.Duration(i)*time.Second))
		assert.True(t, blocked)
	}
	_, blocked := tr.Check("ch", "a", now.Add(10*time.Second))
	assert.False(t, blocked)
}

func TestSlowmodeClearCooldown(t *testing.T) {
	tr := NewSlowmodeTracker()
	tr.SetCooldown("ch", time.Minute)
	now := time.Now()

	tr.Check("ch", "a", now)
	tr.ClearCooldown("ch")

	_, blocked := tr.Check("ch", "a", now.Add(time.Second))
	assert.False(t, blocked)

	_, ok := tr.Cooldown("ch")
	assert.False(t, ok)
}

func TestSlowmodeActorsAreIndependent(t *testing.T) {
	tr := NewSlowmodeTracker()
	tr.SetCooldown("ch", 10*time.Second)
	now := time.Now()

	_, blocked := tr.Check("ch", "a", now)
	assert.False(t, blocked)
	_, blocked = tr.Check("ch", "b", now)
	assert.False(t, blocked)
}
