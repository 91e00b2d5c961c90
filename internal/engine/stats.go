package engine

import (
	"sync"
	"time"
)

// DailyCounters are one community's counts for the current UTC date.
type DailyCounters struct {
	Messages   int
	NewMembers int
	Date       string // YYYY-MM-DD, UTC
}

// DailyStats tracks per-community daily counters. Rollover is lazy: the first
// mutation observed on a new UTC date zeroes both counts. There is no
// scheduled midnight reset, so process downtime across the boundary is
// harmless.
type DailyStats struct {
	mu      sync.Mutex
	byGuild map[string]DailyCounters
}

func NewDailyStats() *DailyStats {
	return &DailyStats{byGuild: make(map[string]DailyCounters)}
}

func utcDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

// rolled returns the counters for guildID, zeroed if the stored date is not
// today. Callers hold the lock.
func (s *DailyStats) rolled(guildID string, now time.Time) DailyCounters {
	c := s.byGuild[guildID]
	if today := utcDate(now); c.Date != today {
		c = DailyCounters{Date: today}
	}
	return c
}

// TrackMessage counts one message for the community.
func (s *DailyStats) TrackMessage(guildID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.rolled(guildID, now)
	c.Messages++
	s.byGuild[guildID] = c
}

// TrackJoin counts one membership join for the community.
func (s *DailyStats) TrackJoin(guildID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.rolled(guildID, now)
	c.NewMembers++
	s.byGuild[guildID] = c
}

// Counters returns the community's current counters without resetting them.
func (s *DailyStats) Counters(guildID string) DailyCounters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byGuild[guildID]
}
