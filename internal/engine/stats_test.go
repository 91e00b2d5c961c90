package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyStatsCounts(t *testing.T) {
	s := NewDailyStats()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	s.TrackMessage("g", now)
	s.TrackMessage("g", now.Add(time.Minute))
	s.TrackJoin("g", now.Add(2*time.Minute))

	c := s.Counters("g")
	assert.Equal(t, 2, c.Messages)
	assert.Equal(t, 1, c.NewMembers)
	assert.Equal(t, "2026-08-24", c.Date)
}

func TestDailyStatsLazyRollover(t *testing.T) {
	s := NewDailyStats()
	day1 := time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 25, 0, 1, 0, 0, time.UTC)

	s.TrackMessage("g", day1)
	s.TrackJoin("g", day1)

	// Reads do not roll over.
	assert.Equal(t, 1, s.Counters("g").Messages)

	// The first mutation on the new date zeroes both counters first.
	s.TrackMessage("g", day2)
	c := s.Counters("g")
	assert.Equal(t, 1, c.Messages)
	assert.Equal(t, 0, c.NewMembers)
	assert.Equal(t, "2026-08-25", c.Date)
}

func TestDailyStatsRolloverUsesUTC(t *testing.T) {
	s := NewDailyStats()
	loc := time.FixedZone("UTC+5", 5*3600)

	// 02:00 local on the 25th is still 21:00 UTC on the 24th.
	local := time.Date(2026, 8, 25, 2, 0, 0, 0, loc)
	s.TrackMessage("g", local)
	assert.Equal(t, "2026-08-24", s.Counters("g").Date)
}

func TestDailyStatsCommunitiesAreIndependent(t *testing.T) {
	s := NewDailyStats()
	now := time.Now()

	s.TrackMessage("g1", now)
	s.TrackMessage("g1", now)
	s.TrackMessage("g2", now)

	assert.Equal(t, 2, s.Counters("g1").Messages)
	assert.Equal(t, 1, s.Counters("g2").Messages)
}
