package engine

import (
	"sync"

	"hubkeeper/internal/storage"
)

// ExperienceLedger accumulates per-actor points and the derived level. Reaching
// level n+1 from level n requires cumulative points >= n*100, so thresholds
// grow linearly; a large single award can cross several levels in one call.
// Points and level never decrease.
type ExperienceLedger struct {
	mu      sync.Mutex
	records map[string]storage.XPRecord
}

func NewExperienceLedger(initial map[string]storage.XPRecord) *ExperienceLedger {
	records := make(map[string]storage.XPRecord, len(initial))
	for actor, rec := range initial {
		if rec.Level < 1 {
			rec.Level = 1
		}
		records[actor] = rec
	}
	return &ExperienceLedger{records: records}
}

// AddPoints awards points and recomputes the level, looping until the total
// falls below the next threshold. Returns whether at least one level was
// crossed and the final level.
func (l *ExperienceLedger) AddPoints(actorID string, amount int) (leveledUp bool, level int) {
	if amount < 0 {
		amount = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[actorID]
	if !ok {
		rec = storage.XPRecord{XP: 0, Level: 1}
	}
	rec.XP += amount

	for rec.XP >= rec.Level*100 {
		rec.Level++
		leveledUp = true
	}

	l.records[actorID] = rec
	return leveledUp, rec.Level
}

// Get returns the actor's record; absent actors are level 1 with zero points.
func (l *ExperienceLedger) Get(actorID string) storage.XPRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec, ok := l.records[actorID]; ok {
		return rec
	}
	return storage.XPRecord{XP: 0, Level: 1}
}

// Snapshot copies the whole table for persistence.
func (l *ExperienceLedger) Snapshot() map[string]storage.XPRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]storage.XPRecord, len(l.records))
	for actor, rec := range l.records {
		out[actor] = rec
	}
	return out
}
