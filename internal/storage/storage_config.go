package storage

import (
	"encoding/json"
	"log"
	"slices"
	"strings"
)

// BotConfig is the guild-facing feature configuration. Every flag has a
// defined default; loading overlays the persisted record on top of the
// defaults, so missing keys stay defaulted and unknown keys are ignored.
type BotConfig struct {
	AIEnabled         bool     `json:"ai_enabled"`
	ModerationEnabled bool     `json:"moderation_enabled"`
	SpamProtection    bool     `json:"spam_protection"`
	LinkBlocking      bool     `json:"link_blocking"`
	DailySummary      bool     `json:"daily_summary"`
	WeeklySummary     bool     `json:"weekly_summary"`
	XPEnabled         bool     `json:"xp_enabled"`
	DefaultAIMode     string   `json:"ai_default_mode"`
	BannedTerms       []string `json:"banned_words"`
}

func DefaultBotConfig() BotConfig {
	return BotConfig{
		AIEnabled:         true,
		ModerationEnabled: true,
		SpamProtection:    true,
		LinkBlocking:      true,
		DailySummary:      true,
		WeeklySummary:     true,
		XPEnabled:         true,
		DefaultAIMode:     "ceil",
		BannedTerms:       []string{"fuck", "shit", "bitch"},
	}
}

// Clone returns a copy that shares no slices with the receiver.
func (c BotConfig) Clone() BotConfig {
	out := c
	out.BannedTerms = slices.Clone(c.BannedTerms)
	return out
}

// ContainsBannedTerm reports whether text contains any banned term. Matching
// is raw case-insensitive substring containment: a term banned as a word also
// matches inside unrelated longer words ("shit" matches "mishit"). Switching
// to word-boundary matching is a product decision that has not been made, so
// the historical behavior stands.
func (c BotConfig) ContainsBannedTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range c.BannedTerms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// AddBannedTerm adds a term (lowercased, trimmed). Returns false if it was
// already present.
func (c *BotConfig) AddBannedTerm(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || slices.Contains(c.BannedTerms, term) {
		return false
	}
	c.BannedTerms = append(c.BannedTerms, term)
	return true
}

// RemoveBannedTerm removes a term. Returns false if it was not present.
func (c *BotConfig) RemoveBannedTerm(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	i := slices.Index(c.BannedTerms, term)
	if i < 0 {
		return false
	}
	c.BannedTerms = slices.Delete(c.BannedTerms, i, i+1)
	return true
}

// FeatureKeys maps the admin-facing feature names onto config fields.
var FeatureKeys = map[string]func(*BotConfig, bool){
	"ai":         func(c *BotConfig, v bool) { c.AIEnabled = v },
	"moderation": func(c *BotConfig, v bool) { c.ModerationEnabled = v },
	"spam":       func(c *BotConfig, v bool) { c.SpamProtection = v },
	"links":      func(c *BotConfig, v bool) { c.LinkBlocking = v },
	"daily":      func(c *BotConfig, v bool) { c.DailySummary = v },
	"weekly":     func(c *BotConfig, v bool) { c.WeeklySummary = v },
	"xp":         func(c *BotConfig, v bool) { c.XPEnabled = v },
}

// LoadConfig returns the persisted configuration overlaid on the defaults.
// A missing or malformed record is never fatal; it falls back to defaults.
func (s *Storage) LoadConfig() BotConfig {
	cfg := DefaultBotConfig()

	value, exists := s.ds.Get(configKey)
	if !exists {
		return cfg
	}
	if err := decode(value, &cfg); err != nil {
		log.Println("[WARN] Malformed config record, using defaults:", err)
		return DefaultBotConfig()
	}
	if cfg.DefaultAIMode == "" {
		cfg.DefaultAIMode = DefaultBotConfig().DefaultAIMode
	}
	if cfg.BannedTerms == nil {
		cfg.BannedTerms = DefaultBotConfig().BannedTerms
	}
	return cfg
}

// SaveConfig persists the configuration record and flushes to disk so admin
// mutations survive an immediate crash.
func (s *Storage) SaveConfig(cfg BotConfig) error {
	s.ds.Add(configKey, cfg)
	return s.ds.SaveToFile()
}

// DecodeConfig overlays raw JSON on the defaults; exposed for tests.
func DecodeConfig(raw []byte) BotConfig {
	cfg := DefaultBotConfig()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return DefaultBotConfig()
	}
	return cfg
}
