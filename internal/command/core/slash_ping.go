package core

import (
	"fmt"

	"hubkeeper/internal/command"
	"hubkeeper/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Category() string    { return "🛠️ Maintenance" }
func (c *PingCommand) StaffOnly() bool     { return false }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	v, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	latency := v.Session.HeartbeatLatency().Milliseconds()
	command.Respond(v.Session, v.Event, fmt.Sprintf("🏓 Pong! %dms", latency))
	return nil
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		middleware.WithCommandLogger(),
	)
}
