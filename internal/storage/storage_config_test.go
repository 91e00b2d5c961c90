package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBotConfig(t *testing.T) {
	cfg := DefaultBotConfig()
	assert.True(t, cfg.AIEnabled)
	assert.True(t, cfg.ModerationEnabled)
	assert.True(t, cfg.SpamProtection)
	assert.True(t, cfg.LinkBlocking)
	assert.True(t, cfg.DailySummary)
	assert.True(t, cfg.WeeklySummary)
	assert.True(t, cfg.XPEnabled)
	assert.Equal(t, "ceil", cfg.DefaultAIMode)
	assert.Equal(t, []string{"fuck", "shit", "bitch"}, cfg.BannedTerms)
}

func TestDecodeConfigOverlaysDefaults(t *testing.T) {
	cfg := DecodeConfig([]byte(`{"ai_enabled": false, "banned_words": ["spamword"]}`))

	assert.False(t, cfg.AIEnabled)
	assert.Equal(t, []string{"spamword"}, cfg.BannedTerms)
	// Keys absent from the record keep their defaults.
	assert.True(t, cfg.ModerationEnabled)
	assert.Equal(t, "ceil", cfg.DefaultAIMode)
}

func TestDecodeConfigMalformedFallsBack(t *testing.T) {
	cfg := DecodeConfig([]byte(`{not json`))
	assert.Equal(t, DefaultBotConfig(), cfg)
}

func TestContainsBannedTermSubstring(t *testing.T) {
	cfg := DefaultBotConfig()

	assert.True(t, cfg.ContainsBannedTerm("well SHIT happens"))
	assert.True(t, cfg.ContainsBannedTerm("that was a mishit"))
	assert.False(t, cfg.ContainsBannedTerm("no shirt no shoes"))
	assert.False(t, cfg.ContainsBannedTerm("a perfectly clean sentence"))
}

func TestContainsBannedTermEmptyList(t *testing.T) {
	cfg := DefaultBotConfig()
	cfg.BannedTerms = nil
	assert.False(t, cfg.ContainsBannedTerm("fuck"))
}

func TestAddAndRemoveBannedTerm(t *testing.T) {
	cfg := DefaultBotConfig()

	assert.True(t, cfg.AddBannedTerm("  Scam  "))
	assert.Contains(t, cfg.BannedTerms, "scam")
	assert.False(t, cfg.AddBannedTerm("scam"))
	assert.False(t, cfg.AddBannedTerm("   "))

	assert.True(t, cfg.RemoveBannedTerm("SCAM"))
	assert.NotContains(t, cfg.BannedTerms, "scam")
	assert.False(t, cfg.RemoveBannedTerm("scam"))
}

func TestCloneSharesNothing(t *testing.T) {
	cfg := DefaultBotConfig()
	clone := cfg.Clone()
	clone.AddBannedTerm("extra")
	clone.AIEnabled = false

	assert.NotContains(t, cfg.BannedTerms, "extra")
	assert.True(t, cfg.AIEnabled)
}

func TestFeatureKeysCoverEveryFlag(t *testing.T) {
	fields := map[string]func(BotConfig) bool{
		"ai":         func(c BotConfig) bool { return c.AIEnabled },
		"moderation": func(c BotConfig) bool { return c.ModerationEnabled },
		"spam":       func(c BotConfig) bool { return c.SpamProtection },
		"links":      func(c BotConfig) bool { return c.LinkBlocking },
		"daily":      func(c BotConfig) bool { return c.DailySummary },
		"weekly":     func(c BotConfig) bool { return c.WeeklySummary },
		"xp":         func(c BotConfig) bool { return c.XPEnabled },
	}
	require.Len(t, FeatureKeys, len(fields))

	for name, read := range fields {
		setter, ok := FeatureKeys[name]
		require.True(t, ok, name)

		cfg := DefaultBotConfig()
		setter(&cfg, false)
		assert.False(t, read(cfg), name)
		setter(&cfg, true)
		assert.True(t, read(cfg), name)
	}
}
