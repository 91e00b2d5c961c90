package engine

import (
	"sync"
	"time"
)

type channelActor struct {
	ChannelID string
	ActorID   string
}

// SlowmodeTracker holds per-channel cooldowns and the last accepted message
// time per (channel, actor). A channel with no entry has slowmode disabled.
type SlowmodeTracker struct {
	mu        sync.Mutex
	cooldowns map[string]time.Duration
	lastSpoke map[channelActor]time.Time
}

func NewSlowmodeTracker() *SlowmodeTracker {
	return &SlowmodeTracker{
		cooldowns: make(map[string]time.Duration),
		lastSpoke: make(map[channelActor]time.Time),
	}
}

// SetCooldown enables slowmode for a channel.
func (t *SlowmodeTracker) SetCooldown(channelID string, cooldown time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cooldowns[channelID] = cooldown
}

// ClearCooldown disables slowmode for a channel.
func (t *SlowmodeTracker) ClearCooldown(channelID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.cooldowns, channelID)
}

// Cooldown returns the channel's cooldown, if slowmode is enabled there.
func (t *SlowmodeTracker) Cooldown(channelID string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.cooldowns[channelID]
	return d, ok
}

// Check decides whether a message at now is accepted. A message is rejected
// iff elapsed time since the actor's last accepted message in that channel is
// strictly less than the cooldown. Accepted messages update the last-spoken
// timestamp; rejected ones do not.
func (t *SlowmodeTracker) Check(channelID, actorID string, now time.Time) (remaining time.Duration, blocked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cooldown, ok := t.cooldowns[channelID]
	if !ok {
		return 0, false
	}

	key := channelActor{ChannelID: channelID, ActorID: actorID}
	if last, spoke := t.lastSpoke[key]; spoke {
		if elapsed := now.Sub(last); elapsed < cooldown {
			return cooldown - elapsed, true
		}
	}
	t.lastSpoke[key] = now
	return 0, false
}
