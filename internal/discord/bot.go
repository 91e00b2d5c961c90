package discord

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"hubkeeper/internal/ai"
	"hubkeeper/internal/command"
	"hubkeeper/internal/config"
	"hubkeeper/internal/engine"
	"hubkeeper/internal/storage"
	"hubkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord session, the moderation engine, and the command
// registry together.
type Bot struct {
	dg     *discordgo.Session
	cfg    *config.Config
	store  *storage.Storage
	eng    *engine.Engine
	aiProv ai.Provider
}

func NewBot(cfg *config.Config, store *storage.Storage, provider ai.Provider) *Bot {
	return &Bot{cfg: cfg, store: store, aiProv: provider}
}

// Engine exposes the moderation engine once Run has created it.
func (b *Bot) Engine() *engine.Engine { return b.eng }

// Run opens the Discord session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.eng = engine.New(b.store, &platformAdapter{dg: dg}, b.aiProv)

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildMemberAdd)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	go b.eng.RunScheduler(ctx)

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.eng.SetSelfID(r.User.ID)

	if b.cfg.InitSlashCommands {
		for _, g := range r.Guilds {
			if err := b.registerCommands(g.ID); err != nil {
				log.Printf("[ERR] Failed to register slash commands for guild %s: %v", g.ID, err)
			}
		}
	} else {
		log.Println("[INFO] Registering slash commands skipped")
	}

	log.Printf("[INFO] ✅ Bot %s is running.", r.User.Username)
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.Guild.ID); err != nil {
			log.Printf("[ERR] Failed to register commands for guild %s: %v", g.Guild.ID, err)
		}
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil {
		return
	}

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}

	channelName := ""
	if ch, err := s.State.Channel(m.ChannelID); err == nil && ch != nil {
		channelName = ch.Name
	}

	b.eng.Process(time.Now(), engine.Message{
		ID:          m.ID,
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		ChannelName: channelName,
		ActorID:     m.Author.ID,
		ActorName:   m.Author.Username,
		Content:     m.Content,
		Bot:         m.Author.Bot || m.Author.ID == s.State.User.ID,
		Staff:       IsStaff(s, m.GuildID, m.Member, b.cfg),
		MentionsBot: mentioned,
	})
}

func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	b.eng.TrackJoin(m.GuildID, time.Now())

	p := &platformAdapter{dg: s}
	if ch := p.findChannel(m.GuildID, WelcomeChannelName); ch != "" {
		p.SendChannel(ch, fmt.Sprintf(
			"Welcome to the Coordination Hub, <@%s>.\nPlease introduce yourself and indicate your levels/groups (e.g. N4 G3, N5 G2).",
			m.User.ID))
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	c := cmd.DefaultRegistry.Get(name)
	if c == nil {
		log.Printf("[WARN] Unknown command: %s", name)
		return
	}

	inv := &cmd.Invocation{Data: &command.SlashInteractionContext{
		Session: s,
		Event:   i,
		Engine:  b.eng,
		Cfg:     b.cfg,
	}}
	if err := c.Run(context.Background(), inv); err != nil {
		log.Printf("[ERR] Error running slash command %s: %v", name, err)
		command.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
	}
}

// registerCommands reconciles the guild's slash commands with the registry:
// obsolete ones are deleted, wanted ones created under a rate limit.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	wantedNames := make(map[string]bool)
	for _, c := range cmd.DefaultRegistry.GetAll() {
		sp, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		wanted = append(wanted, def)
		wantedNames[def.Name] = true
	}

	existing, _ := b.dg.ApplicationCommands(appID, guildID)
	for _, old := range existing {
		if !wantedNames[old.Name] {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := b.dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
		}
	}

	ticker := time.NewTicker(time.Second / 40)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for _, def := range wanted {
		wg.Add(1)
		go func(def *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C
			if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
				log.Printf("[ERR] Can't create command %s: %v", def.Name, err)
			}
		}(def)
	}
	wg.Wait()
	return nil
}
