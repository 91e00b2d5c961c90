package moderation

import (
	"fmt"
	"strconv"
	"time"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type SlowmodeCommand struct{}

func (c *SlowmodeCommand) Name() string        { return "slowmode" }
func (c *SlowmodeCommand) Description() string { return "Set or clear slowmode for this channel" }
func (c *SlowmodeCommand) Category() string    { return "🛡️ Moderation" }
func (c *SlowmodeCommand) StaffOnly() bool     { return true }

func (c *SlowmodeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "setting",
				Description: "Cooldown in seconds, or `off` to disable",
				Required:    true,
			},
		},
	}
}

func (c *SlowmodeCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	setting := opts["setting"].StringValue()
	channelID := v.Event.ChannelID

	if setting == "off" {
		v.Engine.Slowmode.ClearCooldown(channelID)
		command.Respond(v.Session, v.Event, "✅ Slowmode disabled for this channel.")
		return nil
	}

	seconds, err := strconv.Atoi(setting)
	if err != nil || seconds <= 0 {
		// Invalid input changes nothing.
		command.RespondEphemeral(v.Session, v.Event, "Please provide a positive number of seconds, or `off`.")
		return nil
	}

	v.Engine.Slowmode.SetCooldown(channelID, time.Duration(seconds)*time.Second)
	command.Respond(v.Session, v.Event, fmt.Sprintf("🐌 Slowmode set to %d seconds for this channel.", seconds))
	return nil
}

func init() {
	command.RegisterCommand(
		&SlowmodeCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
