package engage

import (
	"fmt"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type RankCommand struct{}

func (c *RankCommand) Name() string        { return "rank" }
func (c *RankCommand) Description() string { return "Show your level and experience" }
func (c *RankCommand) Category() string    { return "🎖️ Engagement" }
func (c *RankCommand) StaffOnly() bool     { return false }

func (c *RankCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Whose rank to show (defaults to you)",
				Required:    false,
			},
		},
	}
}

func (c *RankCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	cfg := v.Engine.Config()
	if !cfg.XPEnabled {
		command.RespondEphemeral(v.Session, v.Event, "The experience system is currently disabled.")
		return nil
	}

	var targetID string
	opts := command.OptionMap(v.Event)
	if opt, ok := opts["member"]; ok {
		if u := opt.UserValue(v.Session); u != nil {
			targetID = u.ID
		}
	}
	if targetID == "" && v.Event.Member != nil && v.Event.Member.User != nil {
		targetID = v.Event.Member.User.ID
	}
	if targetID == "" {
		command.RespondEphemeral(v.Session, v.Event, "Could not work out whose rank to show.")
		return nil
	}

	rec := v.Engine.XP.Get(targetID)
	next := rec.Level * 100
	command.Respond(v.Session, v.Event, fmt.Sprintf(
		"📊 <@%s> is level **%d** with **%d** XP (%d XP to next level).",
		targetID, rec.Level, rec.XP, next-rec.XP))
	return nil
}

func init() {
	command.RegisterCommand(
		&RankCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
