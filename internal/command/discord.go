package command

import (
	"context"

	"hubkeeper/internal/config"
	"hubkeeper/internal/engine"
	"hubkeeper/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// SlashInteractionContext is what the Discord runtime passes when executing a
// slash command.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Engine  *engine.Engine
	Cfg     *config.Config
}

// SlashProvider is implemented by commands that register a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// DiscordMeta is exposed by the adapter so middleware can read command
// metadata without depending on the concrete command type.
type DiscordMeta interface {
	Category() string
	StaffOnly() bool
}

// DiscordCommand is what individual commands implement. Run takes interface{}
// so the same command can be fed different Discord contexts.
type DiscordCommand interface {
	Name() string
	Description() string
	Category() string
	StaffOnly() bool
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry, delegating the provider interfaces to the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }
func (a *DiscordAdapter) Category() string    { return a.Cmd.Category() }
func (a *DiscordAdapter) StaffOnly() bool     { return a.Cmd.StaffOnly() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// RegisterCommand registers a Discord command with the universal registry and
// applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(c)
}
