package engine

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Message is one inbound chat event at the platform boundary.
type Message struct {
	ID          string
	GuildID     string
	ChannelID   string
	ChannelName string
	ActorID     string
	ActorName   string
	Content     string
	Bot         bool // authored by any bot, including us
	Staff       bool // staff permission tier
	MentionsBot bool // the bot was directly addressed
}

// Action is the pipeline's moderation verdict for a message.
type Action int

const (
	ActionPass Action = iota
	ActionDeletedWithNotice
	ActionDeletedSilent
)

// Decision records what the pipeline did with a message. Notices have already
// been emitted through the Platform by the time Process returns.
type Decision struct {
	Action       Action
	AutoMuted    bool
	LeveledUp    bool
	NewLevel     int
	AIDispatched bool
}

// alwaysOnAIChannels qualify every message for AI dispatch regardless of
// mention or mode assignment.
var alwaysOnAIChannels = map[string]bool{
	"ceil-assistant":     true,
	"coordination-hub":   true,
	"academic-assistant": true,
}

var linkTriggers = []string{"http://", "https://", "discord.gg/", ".com", ".net", ".org"}

// Process runs one message through the moderation pipeline: banned terms, link
// filter, slowmode, spam detection, experience accrual, AI dispatch. The first
// stage that deletes the message terminates the pipeline; spam detection and
// later stages only add effects. All stages read one config snapshot.
func (e *Engine) Process(now time.Time, m Message) Decision {
	// Bot-authored traffic is invisible to moderation, XP, counters, and AI.
	if m.Bot {
		return Decision{Action: ActionPass}
	}

	cfg := e.Config()
	lower := strings.ToLower(m.Content)

	if cfg.ModerationEnabled && cfg.ContainsBannedTerm(lower) {
		e.platform.DeleteMessage(m.ChannelID, m.ID)
		e.platform.SendLog(m.GuildID, fmt.Sprintf(
			"🚫 Message deleted from <@%s> in <#%s> for banned language.\nContent: `%s`",
			m.ActorID, m.ChannelID, m.Content))
		return Decision{Action: ActionDeletedWithNotice}
	}

	if cfg.ModerationEnabled && cfg.LinkBlocking && !m.Staff {
		for _, trigger := range linkTriggers {
			if strings.Contains(lower, trigger) {
				e.platform.DeleteMessage(m.ChannelID, m.ID)
				e.platform.SendLog(m.GuildID, fmt.Sprintf(
					"🔗 Auto-deleted link from <@%s> in <#%s>.\nContent: `%s`",
					m.ActorID, m.ChannelID, m.Content))
				return Decision{Action: ActionDeletedWithNotice}
			}
		}
	}

	if !m.Staff {
		if remaining, blocked := e.Slowmode.Check(m.ChannelID, m.ActorID, now); blocked {
			e.platform.DeleteMessage(m.ChannelID, m.ID)
			e.platform.SendDirect(m.ActorID, fmt.Sprintf(
				"You are sending messages too quickly in <#%s>. Please wait %d more seconds.",
				m.ChannelID, int(remaining.Seconds()+0.5)))
			return Decision{Action: ActionDeletedSilent}
		}
	}

	decision := Decision{Action: ActionPass}

	if cfg.ModerationEnabled && cfg.SpamProtection {
		count := e.Spam.Record(m.GuildID, m.ActorID, now)
		if count >= e.Spam.Threshold() && !m.Staff {
			e.Spam.Reset(m.GuildID, m.ActorID)
			e.ApplyMute(m.GuildID, m.ActorID, AutoMuteMinutes*time.Minute, MuteReasonSpam, now)
			e.platform.SendLog(m.GuildID, fmt.Sprintf(
				"🤖 Auto-muted <@%s> for spam in <#%s> for %d minutes.",
				m.ActorID, m.ChannelID, AutoMuteMinutes))
			decision.AutoMuted = true
		}
	}

	if cfg.XPEnabled && len(strings.TrimSpace(m.Content)) > 2 {
		e.Stats.TrackMessage(m.GuildID, now)
		leveledUp, level := e.XP.AddPoints(m.ActorID, XPPerMessage)
		e.saveXP()
		if leveledUp {
			e.platform.SendChannel(m.ChannelID, fmt.Sprintf(
				"🎉 <@%s> just reached level **%d**!", m.ActorID, level))
			decision.LeveledUp = true
			decision.NewLevel = level
		}
	}

	if cfg.AIEnabled {
		qualifies := m.MentionsBot ||
			alwaysOnAIChannels[strings.ToLower(m.ChannelName)] ||
			e.Modes.HasAssignment(m.ChannelID)
		if qualifies {
			persona := e.Modes.Resolve(m.ChannelID, cfg.DefaultAIMode)
			e.DispatchAI(m.ChannelID, m.ActorName, m.Content, persona)
			decision.AIDispatched = true
		}
	}

	return decision
}

// ApplyMute records the mute, applies the platform-side marker, and schedules
// the deferred reversal. The reversal only undoes the record it belongs to;
// an explicit unmute in the meantime makes it a no-op. A newer mute request
// for the same actor replaces both the visible expiry and the pending
// reversal (last writer governs).
func (e *Engine) ApplyMute(guildID, actorID string, duration time.Duration, reason MuteReason, now time.Time) {
	instance := e.Mutes.Apply(guildID, actorID, duration, reason, now)

	if err := e.platform.Mute(guildID, actorID); err != nil {
		log.Printf("[ERR] Failed to mute %s in %s: %v", actorID, guildID, err)
	}

	e.jobs.StartAfter(unmuteJob(guildID, actorID), duration, func() {
		if !e.Mutes.RemoveIf(guildID, actorID, instance) {
			return // already unmuted, or superseded by a newer mute
		}
		if err := e.platform.Unmute(guildID, actorID); err != nil {
			log.Printf("[ERR] Failed to unmute %s in %s: %v", actorID, guildID, err)
		}
		e.platform.SendLog(guildID, fmt.Sprintf("🔈 Auto-unmuted <@%s> after timeout.", actorID))
	})
}

// RemoveMute is the explicit unmute: it clears the record immediately,
// cancels the pending reversal, and removes the platform-side marker. Reports
// whether the actor was muted.
func (e *Engine) RemoveMute(guildID, actorID string) bool {
	wasMuted := e.Mutes.Remove(guildID, actorID)
	e.jobs.Stop(unmuteJob(guildID, actorID))

	if wasMuted {
		if err := e.platform.Unmute(guildID, actorID); err != nil {
			log.Printf("[ERR] Failed to unmute %s in %s: %v", actorID, guildID, err)
		}
	}
	return wasMuted
}

func unmuteJob(guildID, actorID string) string {
	return "unmute:" + guildID + ":" + actorID
}

// TrackJoin counts a membership join for the community's daily summary.
func (e *Engine) TrackJoin(guildID string, now time.Time) {
	e.Stats.TrackJoin(guildID, now)
}
