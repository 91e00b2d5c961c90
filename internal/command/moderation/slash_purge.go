package moderation

import (
	"fmt"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

// Discord's bulk-delete endpoint takes at most 100 messages per call.
const purgeBatchLimit = 100

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Delete the latest messages in this channel" }
func (c *PurgeCommand) Category() string    { return "🛡️ Moderation" }
func (c *PurgeCommand) StaffOnly() bool     { return true }

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many messages to delete (max 100)",
				Required:    true,
			},
		},
	}
}

func (c *PurgeCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	opts := command.OptionMap(v.Event)
	amount := clampPurgeAmount(int(opts["amount"].IntValue()))
	if amount == 0 {
		command.RespondEphemeral(v.Session, v.Event, "Amount must be positive.")
		return nil
	}

	channelID := v.Event.ChannelID
	msgs, err := v.Session.ChannelMessages(channelID, amount, "", "", "")
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	if len(msgs) == 0 {
		command.RespondEphemeral(v.Session, v.Event, "Nothing to delete here.")
		return nil
	}

	if err := v.Session.ChannelMessagesBulkDelete(channelID, messageIDs(msgs)); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	invoker := ""
	if v.Event.Member != nil && v.Event.Member.User != nil {
		invoker = v.Event.Member.User.ID
	}

	command.RespondEphemeral(v.Session, v.Event, fmt.Sprintf("🧹 Deleted %d messages.", len(msgs)))
	v.Engine.Platform().SendLog(v.Event.GuildID, fmt.Sprintf(
		"🧹 <@%s> purged %d messages in <#%s>.", invoker, len(msgs), channelID))
	return nil
}

// clampPurgeAmount rejects non-positive amounts and caps the batch at the API
// limit.
func clampPurgeAmount(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > purgeBatchLimit {
		return purgeBatchLimit
	}
	return amount
}

func messageIDs(msgs []*discordgo.Message) []string {
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	return ids
}

func init() {
	command.RegisterCommand(
		&PurgeCommand{},
		middleware.WithGuildOnly(),
		middleware.WithStaffCheck(),
		middleware.WithCommandLogger(),
	)
}
