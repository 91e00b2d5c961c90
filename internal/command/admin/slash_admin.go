package admin

import (
	"fmt"
	"strings"

	"hubkeeper/internal/command"
	"hubkeeper/internal/engine"
	"hubkeeper/internal/middleware"
	"hubkeeper/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type AdminCommand struct{}

func (c *AdminCommand) Name() string        { return "admin" }
func (c *AdminCommand) Description() string { return "Bot administration" }
func (c *AdminCommand) Category() string    { return "🔐 Administration" }
func (c *AdminCommand) StaffOnly() bool     { return true }

func featureChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(storage.FeatureKeys))
	for name := range storage.FeatureKeys {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices
}

func (c *AdminCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "toggle",
				Description: "Enable or disable a feature",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "feature",
						Description: "Which feature",
						Required:    true,
						Choices:     featureChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "enabled",
						Description: "On or off",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "mode",
				Description: "Set the default AI mode",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "One of the fixed modes",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
				Name:        "bannedwords",
				Description: "Manage the banned term list",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "add",
						Description: "Add a banned term",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        "term",
								Description: "Term to ban",
								Required:    true,
							},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionSubCommand,
						Name:        "remove",
						Description: "Remove a banned term",
						Options: []*discordgo.ApplicationCommandOption{
							{
								Type:        discordgo.ApplicationCommandOptionString,
								Name:        "term",
								Description: "Term to unban",
								Required:    true,
							},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "config",
				Description: "Show the current configuration",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "reload",
				Description: "Reload the configuration from disk",
			},
		},
	}
}

func (c *AdminCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	sub := v.Event.ApplicationCommandData().Options[0]

	switch sub.Name {
	case "toggle":
		c.runToggle(v, sub)
	case "mode":
		c.runMode(v, sub)
	case "bannedwords":
		c.runBannedWords(v, sub)
	case "config":
		c.runShowConfig(v)
	case "reload":
		v.Engine.ReloadConfig()
		command.Respond(v.Session, v.Event, "✅ Configuration reloaded from disk.")
	}
	return nil
}

func (c *AdminCommand) runToggle(v *command.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) {
	var feature string
	var enabled bool
	for _, opt := range sub.Options {
		switch opt.Name {
		case "feature":
			feature = opt.StringValue()
		case "enabled":
			enabled = opt.BoolValue()
		}
	}

	setter, ok := storage.FeatureKeys[feature]
	if !ok {
		command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf("Unknown feature `%s`.", feature))
		return
	}

	v.Engine.UpdateConfig(func(cfg *storage.BotConfig) {
		setter(cfg, enabled)
	})

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	command.Respond(v.Session, v.Event, fmt.Sprintf("✅ Feature **%s** is now %s.", feature, state))
}

func (c *AdminCommand) runMode(v *command.SlashInteractionContext, sub *discordgo.ApplicationCommandInteractionDataOption) {
	mode := sub.Options[0].StringValue()
	if _, ok := engine.FixedPersona(mode); !ok {
		command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf(
			"Unknown mode `%s`. Valid modes: %s.", mode, strings.Join(engine.FixedPersonaTokens(), ", ")))
		return
	}

	v.Engine.UpdateConfig(func(cfg *storage.BotConfig) {
		cfg.DefaultAIMode = mode
	})
	command.Respond(v.Session, v.Event, fmt.Sprintf("✅ Default AI mode set to **%s**.", mode))
}

func (c *AdminCommand) runBannedWords(v *command.SlashInteractionContext, group *discordgo.ApplicationCommandInteractionDataOption) {
	sub := group.Options[0]
	term := sub.Options[0].StringValue()

	switch sub.Name {
	case "add":
		var added bool
		v.Engine.UpdateConfig(func(cfg *storage.BotConfig) {
			added = cfg.AddBannedTerm(term)
		})
		if added {
			command.Respond(v.Session, v.Event, fmt.Sprintf("✅ Added `%s` to the banned term list.", term))
		} else {
			command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf("`%s` is already on the list.", term))
		}

	case "remove":
		var removed bool
		v.Engine.UpdateConfig(func(cfg *storage.BotConfig) {
			removed = cfg.RemoveBannedTerm(term)
		})
		if removed {
			command.Respond(v.Session, v.Event, fmt.Sprintf("✅ Removed `%s` from the banned term list.", term))
		} else {
			command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf("`%s` is not on the list.", term))
		}
	}
}

func (c *AdminCommand) runShowConfig(v *command.SlashInteractionContext) {
	cfg := v.Engine.Config()

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "AI: %s\n", onOff(cfg.AIEnabled))
	fmt.Fprintf(&b, "Moderation: %s\n", onOff(cfg.ModerationEnabled))
	fmt.Fprintf(&b, "Spam protection: %s\n", onOff(cfg.SpamProtection))
	fmt.Fprintf(&b, "Link blocking: %s\n", onOff(cfg.LinkBlocking))
	fmt.Fprintf(&b, "Daily summary: %s\n", onOff(cfg.DailySummary))
	fmt.Fprintf(&b, "Weekly summary: %s\n", onOff(cfg.WeeklySummary))
	fmt.Fprintf(&b, "XP system: %s\n", onOff(cfg.XPEnabled))
	fmt.Fprintf(&b, "Default AI mode: %s\n", cfg.DefaultAIMode)
	fmt.Fprintf(&b, "Banned terms: %s", strings.Join(cfg.BannedTerms, ", "))

	command.RespondEmbedEphemeral(v.Session, v.Event, &discordgo.MessageEmbed{
		Title:       "Current configuration",
		Description: b.String(),
	})
}

func init() {
	command.RegisterCommand(
		&AdminCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
