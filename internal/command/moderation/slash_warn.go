package moderation

import (
	"fmt"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type WarnCommand struct{}

func (c *WarnCommand) Name() string        { return "warn" }
func (c *WarnCommand) Description() string { return "Warn a member" }
func (c *WarnCommand) Category() string    { return "🛡️ Moderation" }
func (c *WarnCommand) StaffOnly() bool     { return true }

func (c *WarnCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to warn",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why",
				Required:    false,
			},
		},
	}
}

func (c *WarnCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	target := opts["member"].UserValue(v.Session)
	if target == nil {
		command.RespondEphemeral(v.Session, v.Event, "Please pick a member to warn.")
		return nil
	}

	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok && opt.StringValue() != "" {
		reason = opt.StringValue()
	}

	invoker := ""
	if v.Event.Member != nil && v.Event.Member.User != nil {
		invoker = v.Event.Member.User.ID
	}

	msg := fmt.Sprintf("⚠️ <@%s> has been warned by <@%s>.\nReason: %s", target.ID, invoker, reason)
	command.Respond(v.Session, v.Event, msg)

	// Mirror the warning to the log channel; a warning carries no ledger state.
	v.Engine.Platform().SendLog(v.Event.GuildID, msg)
	return nil
}

func init() {
	command.RegisterCommand(
		&WarnCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
