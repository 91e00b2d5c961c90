package engine

import (
	"sync"
	"time"
)

type spamKey struct {
	GuildID string
	ActorID string
}

// SpamTracker keeps a sliding window of message timestamps per (guild, actor).
// Entries older than the window are pruned on every append, so the stored
// sequence never holds a timestamp with now-t > window at the moment of a read.
type SpamTracker struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	byKey     map[spamKey][]time.Time
}

func NewSpamTracker(window time.Duration, threshold int) *SpamTracker {
	return &SpamTracker{
		window:    window,
		threshold: threshold,
		byKey:     make(map[spamKey][]time.Time),
	}
}

// Record appends a message timestamp, prunes the window, and returns the
// pruned window size.
func (t *SpamTracker) Record(guildID, actorID string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := spamKey{GuildID: guildID, ActorID: actorID}
	times := append(t.byKey[key], now)

	kept := times[:0]
	for _, ts := range times {
		if now.Sub(ts) <= t.window {
			kept = append(kept, ts)
		}
	}
	t.byKey[key] = kept
	return len(kept)
}

// Count returns the window size as of now without recording a message.
func (t *SpamTracker) Count(guildID, actorID string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, ts := range t.byKey[spamKey{GuildID: guildID, ActorID: actorID}] {
		if now.Sub(ts) <= t.window {
			n++
		}
	}
	return n
}

// Threshold is the window size at which an auto-mute triggers.
func (t *SpamTracker) Threshold() int { return t.threshold }

// Reset clears an actor's window, e.g. after an auto-mute fired.
func (t *SpamTracker) Reset(guildID, actorID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.byKey, spamKey{GuildID: guildID, ActorID: actorID})
}
