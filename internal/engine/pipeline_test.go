package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubkeeper/internal/ai"
	"hubkeeper/internal/storage"
)

// recorderPlatform captures every side effect the engine emits.
type recorderPlatform struct {
	mu           sync.Mutex
	deleted      []string
	channelSends []string
	logSends     []string
	directSends  []string
	coordSends   []string
	mutedActors  []string
	unmuted      []string
	communities  []string
}

func (p *recorderPlatform) DeleteMessage(channelID, messageID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, channelID+"/"+messageID)
}

func (p *recorderPlatform) SendChannel(channelID, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channelSends = append(p.channelSends, channelID+": "+text)
}

func (p *recorderPlatform) SendLog(guildID, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logSends = append(p.logSends, text)
}

func (p *recorderPlatform) SendDirect(actorID, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.directSends = append(p.directSends, actorID+": "+text)
}

func (p *recorderPlatform) SendCoordination(guildID, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coordSends = append(p.coordSends, guildID+": "+text)
}

func (p *recorderPlatform) Mute(guildID, actorID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mutedActors = append(p.mutedActors, actorID)
	return nil
}

func (p *recorderPlatform) Unmute(guildID, actorID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unmuted = append(p.unmuted, actorID)
	return nil
}

func (p *recorderPlatform) Communities() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.communities
}

func (p *recorderPlatform) snapshot() recorderPlatform {
	p.mu.Lock()
	defer p.mu.Unlock()
	return recorderPlatform{
		deleted:      append([]string(nil), p.deleted...),
		channelSends: append([]string(nil), p.channelSends...),
		logSends:     append([]string(nil), p.logSends...),
		directSends:  append([]string(nil), p.directSends...),
		coordSends:   append([]string(nil), p.coordSends...),
		mutedActors:  append([]string(nil), p.mutedActors...),
		unmuted:      append([]string(nil), p.unmuted...),
	}
}

// stubProvider returns a fixed reply and records what it was asked.
type stubProvider struct {
	mu    sync.Mutex
	reply string
	calls [][]ai.Message
}

func (s *stubProvider) Generate(messages []ai.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, messages)
	if s.reply == "" {
		return "ok", nil
	}
	return s.reply, nil
}

func newTestEngine() (*Engine, *recorderPlatform, *stubProvider) {
	platform := &recorderPlatform{}
	provider := &stubProvider{}
	return New(nil, platform, provider), platform, provider
}

func plainMessage(i int) Message {
	return Message{
		ID:        fmt.Sprintf("msg-%d", i),
		GuildID:   "g1",
		ChannelID: "ch1",
		ActorID:   "actor",
		ActorName: "Actor",
		Content:   "hello there",
	}
}

func TestProcessIgnoresBotAuthors(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	m := plainMessage(1)
	m.Bot = true
	m.Content = "fuck https://spam.example.com"

	d := eng.Process(now, m)

	assert.Equal(t, ActionPass, d.Action)
	rec := platform.snapshot()
	assert.Empty(t, rec.deleted)
	assert.Empty(t, rec.logSends)
	assert.Equal(t, 0, eng.XP.Get("actor").XP)
	assert.Equal(t, 0, eng.Stats.Counters("g1").Messages)
}

func TestProcessDeletesBannedTerm(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	m := plainMessage(1)
	m.Content = "well SHIT happens"

	d := eng.Process(now, m)

	assert.Equal(t, ActionDeletedWithNotice, d.Action)
	rec := platform.snapshot()
	require.Len(t, rec.deleted, 1)
	assert.Equal(t, "ch1/msg-1", rec.deleted[0])
	require.Len(t, rec.logSends, 1)
	assert.Contains(t, rec.logSends[0], "banned language")

	// Deletion terminates the pipeline: no XP, no counter.
	assert.Equal(t, 0, eng.XP.Get("actor").XP)
	assert.Equal(t, 0, eng.Stats.Counters("g1").Messages)
}

func TestBannedTermMatchingIsRawSubstring(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	// Matches inside a longer word.
	m := plainMessage(1)
	m.Content = "that was a mishit"
	assert.Equal(t, ActionDeletedWithNotice, eng.Process(now, m).Action)

	// "shirt" does not contain "shit"; the message passes.
	m2 := plainMessage(2)
	m2.Content = "no shirt no shoes"
	assert.Equal(t, ActionPass, eng.Process(now, m2).Action)

	rec := platform.snapshot()
	assert.Len(t, rec.deleted, 1)
}

func TestProcessDeletesLinksFromNonStaff(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	for i, content := range []string{
		"check http://a.example",
		"join discord.gg/abc",
		"see example.org for details",
	} {
		m := plainMessage(i)
		m.Content = content
		d := eng.Process(now.Add(time.Duration(i)*time.Minute), m)
		assert.Equal(t, ActionDeletedWithNotice, d.Action, content)
	}

	rec := platform.snapshot()
	assert.Len(t, rec.deleted, 3)
	for _, entry := range rec.logSends {
		assert.Contains(t, entry, "Auto-deleted link")
	}
}

func TestProcessAllowsLinksFromStaff(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	m := plainMessage(1)
	m.Content = "pinned: https://rules.example.com"
	m.Staff = true

	d := eng.Process(now, m)

	assert.Equal(t, ActionPass, d.Action)
	assert.Empty(t, platform.snapshot().deleted)
	// The staff message still earns XP.
	assert.Equal(t, XPPerMessage, eng.XP.Get("actor").XP)
}

func TestProcessLinkFilterDisabled(t *testing.T) {
	eng, platform, _ := newTestEngine()
	eng.UpdateConfig(func(c *storage.BotConfig) { c.LinkBlocking = false })
	now := time.Now()

	m := plainMessage(1)
	m.Content = "see https://a.example"

	assert.Equal(t, ActionPass, eng.Process(now, m).Action)
	assert.Empty(t, platform.snapshot().deleted)
}

func TestProcessSlowmodeBlocksQuickRepeat(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()
	eng.Slowmode.SetCooldown("ch1", 10*time.Second)

	first := plainMessage(1)
	assert.Equal(t, ActionPass, eng.Process(now, first).Action)

	second := plainMessage(2)
	d := eng.Process(now.Add(3*time.Second), second)
	assert.Equal(t, ActionDeletedSilent, d.Action)

	rec := platform.snapshot()
	require.Len(t, rec.deleted, 1)
	assert.Equal(t, "ch1/msg-2", rec.deleted[0])
	require.Len(t, rec.directSends, 1)
	assert.Contains(t, rec.directSends[0], "7 more seconds")
	// Silent removal: nothing in the log channel.
	assert.Empty(t, rec.logSends)
	// The blocked message earned no XP.
	assert.Equal(t, XPPerMessage, eng.XP.Get("actor").XP)

	// The rejection did not reset the clock; 10s after the accepted
	// message the actor may speak again.
	third := plainMessage(3)
	assert.Equal(t, ActionPass, eng.Process(now.Add(10*time.Second), third).Action)
}

func TestProcessSlowmodeExemptsStaff(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()
	eng.Slowmode.SetCooldown("ch1", time.Minute)

	for i := 0; i < 3; i++ {
		m := plainMessage(i)
		m.Staff = true
		assert.Equal(t, ActionPass, eng.Process(now, m).Action)
	}
	assert.Empty(t, platform.snapshot().deleted)
}

func TestProcessAutoMutesSpammer(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	var d Decision
	for i := 0; i < SpamThreshold; i++ {
		m := plainMessage(i)
		d = eng.Process(now.Add(time.Duration(i)*time.Second), m)
	}

	assert.True(t, d.AutoMuted)
	assert.Equal(t, ActionPass, d.Action)
	assert.True(t, eng.Mutes.IsMuted("g1", "actor"))

	rec, ok := eng.Mutes.Get("g1", "actor")
	require.True(t, ok)
	assert.Equal(t, MuteReasonSpam, rec.Reason)

	snap := platform.snapshot()
	require.Len(t, snap.mutedActors, 1)
	found := false
	for _, entry := range snap.logSends {
		if strings.Contains(entry, "Auto-muted") && strings.Contains(entry, "spam") {
			found = true
		}
	}
	assert.True(t, found)

	// The window was cleared when the mute fired.
	assert.Equal(t, 0, eng.Spam.Count("g1", "actor", now.Add(time.Duration(SpamThreshold)*time.Second)))
}

func TestProcessSlowMessagesNeverMute(t *testing.T) {
	eng, _, _ := newTestEngine()
	now := time.Now()

	// Same volume spread over a longer stretch than the window.
	var d Decision
	for i := 0; i < SpamThreshold; i++ {
		m := plainMessage(i)
		d = eng.Process(now.Add(time.Duration(i)*2*time.Second), m)
	}

	assert.False(t, d.AutoMuted)
	assert.False(t, eng.Mutes.IsMuted("g1", "actor"))
}

func TestProcessSpamExemptsStaff(t *testing.T) {
	eng, _, _ := newTestEngine()
	now := time.Now()

	for i := 0; i < SpamThreshold+3; i++ {
		m := plainMessage(i)
		m.Staff = true
		d := eng.Process(now, m)
		assert.False(t, d.AutoMuted)
	}
	assert.False(t, eng.Mutes.IsMuted("g1", "actor"))
}

func TestProcessXPAndLevelNotice(t *testing.T) {
	eng, platform, _ := newTestEngine()
	now := time.Now()

	var d Decision
	for i := 0; i < 10; i++ {
		m := plainMessage(i)
		// Spread messages out so spam protection stays quiet.
		d = eng.Process(now.Add(time.Duration(i)*time.Minute), m)
	}

	assert.True(t, d.LeveledUp)
	assert.Equal(t, 2, d.NewLevel)
	assert.Equal(t, 100, eng.XP.Get("actor").XP)
	assert.Equal(t, 10, eng.Stats.Counters("g1").Messages)

	snap := platform.snapshot()
	require.NotEmpty(t, snap.channelSends)
	assert.Contains(t, snap.channelSends[len(snap.channelSends)-1], "level **2**")
}

func TestProcessShortMessagesEarnNothing(t *testing.T) {
	eng, _, _ := newTestEngine()
	now := time.Now()

	for i, content := range []string{"ok", "  hi  ", ".."} {
		m := plainMessage(i)
		m.Content = content
		eng.Process(now.Add(time.Duration(i)*time.Minute), m)
	}

	assert.Equal(t, 0, eng.XP.Get("actor").XP)
	assert.Equal(t, 0, eng.Stats.Counters("g1").Messages)
}

func TestProcessAIDispatchQualification(t *testing.T) {
	cases := []struct {
		name      string
		configure func(eng *Engine, m *Message)
		want      bool
	}{
		{
			name:      "plain message in plain channel",
			configure: func(eng *Engine, m *Message) {},
			want:      false,
		},
		{
			name:      "direct mention",
			configure: func(eng *Engine, m *Message) { m.MentionsBot = true },
			want:      true,
		},
		{
			name:      "always-on channel",
			configure: func(eng *Engine, m *Message) { m.ChannelName = "CEIL-Assistant" },
			want:      true,
		},
		{
			name: "channel with mode assignment",
			configure: func(eng *Engine, m *Message) {
				_, err := eng.Modes.Set(m.ChannelID, "fun")
				require.NoError(t, err)
			},
			want: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, _ := newTestEngine()
			m := plainMessage(1)
			tc.configure(eng, &m)
			d := eng.Process(time.Now(), m)
			assert.Equal(t, tc.want, d.AIDispatched)
		})
	}
}

func TestProcessAIDisabled(t *testing.T) {
	eng, _, _ := newTestEngine()
	eng.UpdateConfig(func(c *storage.BotConfig) { c.AIEnabled = false })

	m := plainMessage(1)
	m.MentionsBot = true
	d := eng.Process(time.Now(), m)
	assert.False(t, d.AIDispatched)
}

func TestApplyMuteReversalFires(t *testing.T) {
	eng, platform, _ := newTestEngine()

	eng.ApplyMute("g1", "actor", 20*time.Millisecond, MuteReasonManual, time.Now())
	require.True(t, eng.Mutes.IsMuted("g1", "actor"))

	require.Eventually(t, func() bool {
		return !eng.Mutes.IsMuted("g1", "actor")
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(platform.snapshot().unmuted) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestExplicitUnmuteDisarmsReversal(t *testing.T) {
	eng, platform, _ := newTestEngine()

	eng.ApplyMute("g1", "actor", 30*time.Millisecond, MuteReasonManual, time.Now())
	require.True(t, eng.RemoveMute("g1", "actor"))
	assert.False(t, eng.Mutes.IsMuted("g1", "actor"))

	// Give the would-be reversal time to fire; it must not unmute again.
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, platform.snapshot().unmuted, 1)
}

func TestNewerMuteReplacesPendingReversal(t *testing.T) {
	eng, _, _ := newTestEngine()
	now := time.Now()

	eng.ApplyMute("g1", "actor", 20*time.Millisecond, MuteReasonSpam, now)
	eng.ApplyMute("g1", "actor", 500*time.Millisecond, MuteReasonManual, now)

	// The first reversal window elapses; the newer mute must survive it.
	time.Sleep(80 * time.Millisecond)
	rec, ok := eng.Mutes.Get("g1", "actor")
	require.True(t, ok)
	assert.Equal(t, MuteReasonManual, rec.Reason)
}

func TestRemoveMuteWhenNotMuted(t *testing.T) {
	eng, platform, _ := newTestEngine()
	assert.False(t, eng.RemoveMute("g1", "ghost"))
	assert.Empty(t, platform.snapshot().unmuted)
}
