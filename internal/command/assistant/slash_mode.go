package assistant

import (
	"fmt"
	"strings"

	"hubkeeper/internal/command"
	"hubkeeper/internal/engine"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type ModeCommand struct{}

func (c *ModeCommand) Name() string        { return "mode" }
func (c *ModeCommand) Description() string { return "Manage the assistant mode for this channel" }
func (c *ModeCommand) Category() string    { return "🤖 Assistant" }
func (c *ModeCommand) StaffOnly() bool     { return false }

func (c *ModeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Set the mode: a fixed mode name, or `topic <something>`",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "ceil / education / admin / general / fun / topic <something>",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "show",
				Description: "Show this channel's effective mode",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List available modes",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "clear",
				Description: "Remove this channel's mode assignment",
			},
		},
	}
}

func (c *ModeCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	sub := v.Event.ApplicationCommandData().Options[0]
	channelID := v.Event.ChannelID

	switch sub.Name {
	case "set":
		raw := sub.Options[0].StringValue()
		persona, err := v.Engine.Modes.Set(channelID, raw)
		if err != nil {
			command.RespondEphemeral(v.Session, v.Event, err.Error())
			return nil
		}
		command.Respond(v.Session, v.Event, fmt.Sprintf("✅ AI mode for this channel set to **%s**.", persona.Key()))

	case "show":
		persona := v.Engine.Modes.Resolve(channelID, v.Engine.Config().DefaultAIMode)
		command.Respond(v.Session, v.Event, fmt.Sprintf("The AI mode for this channel is **%s**.", persona.Key()))

	case "list":
		command.Respond(v.Session, v.Event, fmt.Sprintf(
			"**Available AI modes:**\n- %s\n\nUse `/mode set <name>`, or `/mode set topic <something>` to lock the assistant to a topic.",
			strings.Join(engine.FixedPersonaTokens(), ", ")))

	case "clear":
		v.Engine.Modes.Clear(channelID)
		command.Respond(v.Session, v.Event, "✅ AI mode assignment removed for this channel.")
	}

	return nil
}

func init() {
	command.RegisterCommand(
		&ModeCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
