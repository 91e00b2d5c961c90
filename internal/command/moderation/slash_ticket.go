package moderation

import (
	"fmt"
	"log"
	"time"

	"hubkeeper/internal/command"
	"hubkeeper/internal/discord"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type TicketCommand struct{}

func (c *TicketCommand) Name() string        { return "ticket" }
func (c *TicketCommand) Description() string { return "Open a support ticket for the coordination team" }
func (c *TicketCommand) Category() string    { return "🛡️ Moderation" }
func (c *TicketCommand) StaffOnly() bool     { return false }

func (c *TicketCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "issue",
				Description: "What do you need help with?",
				Required:    true,
			},
		},
	}
}

func (c *TicketCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	issue := opts["issue"].StringValue()

	ticketsCh := discord.FindTextChannel(v.Session, v.Event.GuildID, discord.TicketsChannelName)
	if ticketsCh == "" {
		command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf(
			"No `%s` channel found. Please ask the Coordinator to create it.",
			discord.TicketsChannelName))
		return nil
	}

	actorID := ""
	if v.Event.Member != nil && v.Event.Member.User != nil {
		actorID = v.Event.Member.User.ID
	}

	embed := buildTicketEmbed(issue, actorID, v.Event.ChannelID, time.Now())
	if _, err := v.Session.ChannelMessageSendEmbed(ticketsCh, embed); err != nil {
		log.Printf("[WARN] Failed to post ticket to %s: %v", ticketsCh, err)
		command.RespondEphemeral(v.Session, v.Event, "Could not create your ticket right now. Please try again later.")
		return nil
	}

	command.RespondEphemeral(v.Session, v.Event, "✅ Your ticket has been created. The coordination team will review it.")
	return nil
}

func buildTicketEmbed(issue, actorID, channelID string, now time.Time) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "New Support Ticket",
		Description: issue,
		Color:       command.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Opened by", Value: fmt.Sprintf("<@%s> (%s)", actorID, actorID)},
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", channelID)},
		},
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

func init() {
	command.RegisterCommand(
		&TicketCommand{},
		middleware.WithGuildOnly(),
		middleware.WithCommandLogger(),
	)
}
