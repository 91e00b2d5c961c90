package middleware

import (
	"context"
	"log"

	"hubkeeper/internal/command"
	"hubkeeper/internal/discord"
	"hubkeeper/pkg/cmd"
)

// WithGuildOnly silently drops invocations that arrive outside a guild (DMs).
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if v, ok := inv.Data.(*command.SlashInteractionContext); ok && v.Event.GuildID == "" {
				command.RespondEphemeral(v.Session, v.Event, "This command only works inside a server.")
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithStaffCheck rejects staff-only commands invoked by non-staff members.
// The rejection is ephemeral and mutates nothing.
func WithStaffCheck() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := inv.Data.(*command.SlashInteractionContext)
			if !ok {
				return c.Run(ctx, inv)
			}

			meta, ok := cmd.Root(c).(command.DiscordMeta)
			if !ok || !meta.StaffOnly() {
				return c.Run(ctx, inv)
			}

			if !discord.IsStaff(v.Session, v.Event.GuildID, v.Event.Member, v.Cfg) {
				command.RespondEphemeral(v.Session, v.Event, "❌ You are not authorized to use this command.")
				return nil
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithCommandLogger logs each invocation after it runs.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)
			if v, ok := inv.Data.(*command.SlashInteractionContext); ok && v.Event.Member != nil && v.Event.Member.User != nil {
				log.Printf("[INFO] /%s by %s in guild %s channel %s",
					c.Name(), v.Event.Member.User.Username, v.Event.GuildID, v.Event.ChannelID)
			}
			return err
		})
	}
}
