package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpamTrackerPrunesOldEntries(t *testing.T) {
	tr := NewSpamTracker(8*time.Second, 7)
	base := time.Now()

	for i := 0; i < 5; i++ {
		tr.Record("g", "a", base.Add(time.Duration(i)*time.Second))
	}
	assert.Equal(t, 5, tr.Count("g", "a", base.Add(4*time.Second)))

	// 20s later every entry has aged out; the next record stands alone.
	assert.Equal(t, 1, tr.Record("g", "a", base.Add(20*time.Second)))
}

func TestSpamTrackerBoundaryIsInclusive(t *testing.T) {
	tr := NewSpamTracker(8*time.Second, 7)
	base := time.Now()

	tr.Record("g", "a", base)
	// Exactly window-old entries still count.
	assert.Equal(t, 2, tr.Record("g", "a", base.Add(8*time.Second)))
	// One instant past the window they are gone.
	assert.Equal(t, 1, tr.Count("g", "a", base.Add(8*time.Second+time.Nanosecond)))
}

func TestSpamTrackerKeysAreIndependent(t *testing.T) {
	tr := NewSpamTracker(8*time.Second, 7)
	now := time.Now()

	tr.Record("g1", "a", now)
	tr.Record("g1", "b", now)
	tr.Record("g2", "a", now)

	assert.Equal(t, 1, tr.Count("g1", "a", now))
	assert.Equal(t, 1, tr.Count("g1", "b", now))
	assert.Equal(t, 1, tr.Count("g2", "a", now))
}

func TestSpamTrackerReset(t *testing.T) {
	tr := NewSpamTracker(8*time.Second, 7)
	now := time.Now()

	for i := 0; i < 7; i++ {
		tr.Record("g", "a", now)
	}
	tr.Reset("g", "a")
	assert.Equal(t, 0, tr.Count("g", "a", now))
}
