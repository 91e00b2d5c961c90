// Package engine is the moderation-and-engagement core: per-entity trackers
// (spam windows, slowmode timestamps, active mutes, experience ledger,
// per-channel persona assignment) and the pipeline that turns inbound chat
// events into moderation actions, level-up notices, and AI dispatches.
//
// The engine is platform-agnostic. It talks to Discord only through the
// Platform interface and to the language model only through ai.Provider, so
// the whole decision surface is testable without a live session.
package engine

import (
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hubkeeper/internal/ai"
	"hubkeeper/internal/storage"
	"hubkeeper/pkg/jobmgr"
)

const (
	SpamWindow      = 8 * time.Second
	SpamThreshold   = 7
	AutoMuteMinutes = 15

	XPPerMessage = 10

	ReplyLimit      = 1900
	truncationNote  = "\n\n[Truncated reply]"
	emptyMentionAsk = "The user mentioned you but wrote nothing else. Ask them what they need."
)

// Platform is the chat-platform collaborator boundary. Implementations must
// swallow delivery failures (log and continue): once the engine has decided,
// a lost notice is not retried or escalated.
type Platform interface {
	DeleteMessage(channelID, messageID string)
	SendChannel(channelID, text string)
	SendLog(guildID, text string)
	SendDirect(actorID, text string)
	SendCoordination(guildID, text string)
	Mute(guildID, actorID string) error
	Unmute(guildID, actorID string) error
	Communities() []string
}

// Engine owns all tracker state. Each tracker guards itself; the engine-level
// mutex only protects the config snapshot and the self ID.
type Engine struct {
	mu     sync.RWMutex
	cfg    storage.BotConfig
	selfID string

	store    *storage.Storage
	platform Platform
	provider ai.Provider

	Spam     *SpamTracker
	Slowmode *SlowmodeTracker
	Mutes    *MuteLedger
	XP       *ExperienceLedger
	Modes    *ModeRouter
	Stats    *DailyStats

	jobs      *jobmgr.Manager
	aiLimiter *rate.Limiter
}

func New(store *storage.Storage, platform Platform, provider ai.Provider) *Engine {
	cfg := storage.DefaultBotConfig()
	var xp map[string]storage.XPRecord
	if store != nil {
		cfg = store.LoadConfig()
		xp = store.LoadXP()
	}

	return &Engine{
		cfg:      cfg,
		store:    store,
		platform: platform,
		provider: provider,
		Spam:     NewSpamTracker(SpamWindow, SpamThreshold),
		Slowmode: NewSlowmodeTracker(),
		Mutes:    NewMuteLedger(),
		XP:       NewExperienceLedger(xp),
		Modes:    NewModeRouter(),
		Stats:    NewDailyStats(),
		jobs: jobmgr.NewManager(func(msg string) {
			log.Println("[INFO] job:", msg)
		}),
		// LLM calls are the dominant cost of the pipeline; cap the outbound
		// rate globally so a busy hour cannot flood the provider.
		aiLimiter: rate.NewLimiter(rate.Every(10*time.Second), 6),
	}
}

// SetSelfID records the bot's own user ID so direct-address markup can be
// stripped from dispatched text. Called once the session is ready.
func (e *Engine) SetSelfID(id string) {
	e.mu.Lock()
	e.selfID = id
	e.mu.Unlock()
}

// Config returns a consistent snapshot of the feature configuration. Each
// message is processed against one snapshot; admin writes land between
// messages, never inside one.
func (e *Engine) Config() storage.BotConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// UpdateConfig applies fn to the configuration under the write lock and
// persists the result. Admin operations funnel through here.
func (e *Engine) UpdateConfig(fn func(*storage.BotConfig)) storage.BotConfig {
	e.mu.Lock()
	fn(&e.cfg)
	snapshot := e.cfg.Clone()
	e.mu.Unlock()

	if e.store != nil {
		if err := e.store.SaveConfig(snapshot); err != nil {
			log.Println("[ERR] Failed to persist config:", err)
		}
	}
	return snapshot
}

// ReloadConfig re-reads the persisted configuration, replacing the in-memory
// snapshot. Malformed files fall back to defaults inside storage.
func (e *Engine) ReloadConfig() storage.BotConfig {
	if e.store == nil {
		return e.Config()
	}
	cfg := e.store.LoadConfig()
	e.mu.Lock()
	e.cfg = cfg
	snapshot := e.cfg.Clone()
	e.mu.Unlock()
	return snapshot
}

// Platform exposes the chat-platform collaborator for callers outside the
// pipeline, such as slash commands that mirror notices to the log channel.
func (e *Engine) Platform() Platform {
	return e.platform
}

func (e *Engine) self() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selfID
}

func (e *Engine) saveXP() {
	if e.store == nil {
		return
	}
	if err := e.store.SaveXP(e.XP.Snapshot()); err != nil {
		log.Println("[ERR] Failed to persist experience table:", err)
	}
}
