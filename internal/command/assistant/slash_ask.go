package assistant

import (
	"fmt"
	"log"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type AskCommand struct{}

func (c *AskCommand) Name() string        { return "ask" }
func (c *AskCommand) Description() string { return "Ask the assistant using this channel's mode" }
func (c *AskCommand) Category() string    { return "🤖 Assistant" }
func (c *AskCommand) StaffOnly() bool     { return false }

func (c *AskCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "text",
				Description: "What do you want to ask?",
				Required:    true,
			},
		},
	}
}

func (c *AskCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	cfg := v.Engine.Config()
	if !cfg.AIEnabled {
		command.RespondEphemeral(v.Session, v.Event, "AI is currently disabled by the coordinator.")
		return nil
	}

	opts := command.OptionMap(v.Event)
	query := opts["text"].StringValue()

	// The model call is slow; defer and follow up.
	err := v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	actorName := ""
	if v.Event.Member != nil && v.Event.Member.User != nil {
		actorName = v.Event.Member.User.Username
	}

	persona := v.Engine.Modes.Resolve(v.Event.ChannelID, cfg.DefaultAIMode)
	reply, err := v.Engine.Generate(actorName, query, persona)
	if err != nil {
		log.Println("[ERR] AI generate failed:", err)
		reply = "The assistant could not produce a reply right now. Please try again later."
	}

	_, err = v.Session.FollowupMessageCreate(v.Event.Interaction, true, &discordgo.WebhookParams{
		Content: reply,
	})
	return err
}

func init() {
	command.RegisterCommand(
		&AskCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
