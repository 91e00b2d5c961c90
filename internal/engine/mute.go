package engine

import (
	"sync"
	"time"
)

// MuteReason classifies what put the mute in place.
type MuteReason string

const (
	MuteReasonSpam   MuteReason = "spam"
	MuteReasonManual MuteReason = "manual"
)

type muteKey struct {
	GuildID string
	ActorID string
}

// MuteRecord is one actor's active mute. At most one exists per actor; a newer
// mute request overwrites the visible expiry (last writer governs) rather than
// stacking.
type MuteRecord struct {
	ExpiresAt time.Time
	Reason    MuteReason
	instance  uint64
}

// MuteLedger records currently muted actors. Each Apply hands out an instance
// token; the deferred reversal for that request only removes the record if the
// token still matches, so a reversal firing after an explicit unmute (or after
// a newer mute replaced the record) is a no-op.
type MuteLedger struct {
	mu      sync.Mutex
	records map[muteKey]MuteRecord
	seq     uint64
}

func NewMuteLedger() *MuteLedger {
	return &MuteLedger{records: make(map[muteKey]MuteRecord)}
}

// Apply creates or replaces the actor's mute record with expiry now+duration
// and returns the instance token for the matching deferred reversal.
func (l *MuteLedger) Apply(guildID, actorID string, duration time.Duration, reason MuteReason, now time.Time) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.records[muteKey{GuildID: guildID, ActorID: actorID}] = MuteRecord{
		ExpiresAt: now.Add(duration),
		Reason:    reason,
		instance:  l.seq,
	}
	return l.seq
}

// Remove clears the actor's mute unconditionally (explicit unmute). Reports
// whether a record was present.
func (l *MuteLedger) Remove(guildID, actorID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := muteKey{GuildID: guildID, ActorID: actorID}
	_, ok := l.records[key]
	delete(l.records, key)
	return ok
}

// RemoveIf clears the mute only when the stored record still belongs to the
// given instance. Used by deferred reversals.
func (l *MuteLedger) RemoveIf(guildID, actorID string, instance uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := muteKey{GuildID: guildID, ActorID: actorID}
	rec, ok := l.records[key]
	if !ok || rec.instance != instance {
		return false
	}
	delete(l.records, key)
	return true
}

// Get returns the active record, if any.
func (l *MuteLedger) Get(guildID, actorID string) (MuteRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[muteKey{GuildID: guildID, ActorID: actorID}]
	return rec, ok
}

// IsMuted reports whether the actor carries an active record.
func (l *MuteLedger) IsMuted(guildID, actorID string) bool {
	_, ok := l.Get(guildID, actorID)
	return ok
}
