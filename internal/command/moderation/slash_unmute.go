package moderation

import (
	"fmt"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type UnmuteCommand struct{}

func (c *UnmuteCommand) Name() string        { return "unmute" }
func (c *UnmuteCommand) Description() string { return "Remove a member's mute" }
func (c *UnmuteCommand) Category() string    { return "🛡️ Moderation" }
func (c *UnmuteCommand) StaffOnly() bool     { return true }

func (c *UnmuteCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to unmute",
				Required:    true,
			},
		},
	}
}

func (c *UnmuteCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	target := opts["member"].UserValue(v.Session)
	if target == nil {
		command.RespondEphemeral(v.Session, v.Event, "Please pick a member to unmute.")
		return nil
	}

	if v.Engine.RemoveMute(v.Event.GuildID, target.ID) {
		command.Respond(v.Session, v.Event, fmt.Sprintf("🔈 <@%s> has been unmuted.", target.ID))
	} else {
		command.RespondEphemeral(v.Session, v.Event, "User is not muted.")
	}
	return nil
}

func init() {
	command.RegisterCommand(
		&UnmuteCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
