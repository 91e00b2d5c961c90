package moderation

import (
	"fmt"
	"time"

	"hubkeeper/internal/command"
	"hubkeeper/internal/engine"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type MuteCommand struct{}

func (c *MuteCommand) Name() string        { return "mute" }
func (c *MuteCommand) Description() string { return "Temporarily mute a member" }
func (c *MuteCommand) Category() string    { return "🛡️ Moderation" }
func (c *MuteCommand) StaffOnly() bool     { return true }

func (c *MuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to mute",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "minutes",
				Description: "Mute duration in minutes (default 10)",
				Required:    false,
			},
		},
	}
}

func (c *MuteCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	target := opts["member"].UserValue(v.Session)
	if target == nil {
		command.RespondEphemeral(v.Session, v.Event, "Please pick a member to mute.")
		return nil
	}

	minutes := int64(10)
	if opt, ok := opts["minutes"]; ok {
		minutes = opt.IntValue()
	}
	if minutes <= 0 {
		command.RespondEphemeral(v.Session, v.Event, "Please provide a positive number of minutes.")
		return nil
	}

	v.Engine.ApplyMute(v.Event.GuildID, target.ID, time.Duration(minutes)*time.Minute, engine.MuteReasonManual, time.Now())
	command.Respond(v.Session, v.Event, fmt.Sprintf("🔇 <@%s> has been muted for %d minutes.", target.ID, minutes))
	return nil
}

func init() {
	command.RegisterCommand(
		&MuteCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
