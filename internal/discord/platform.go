package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

const (
	LogChannelName          = "ceil-logs"
	WelcomeChannelName      = "welcome"
	CoordinationChannelName = "coordination-hub"
	TicketsChannelName      = "tickets"
	MutedRoleName           = "Muted"
)

// FindTextChannel returns the ID of the guild's text channel with the given
// name, or "" when the guild or channel is unknown.
func FindTextChannel(s *discordgo.Session, guildID, name string) string {
	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		return ""
	}
	for _, ch := range guild.Channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			return ch.ID
		}
	}
	return ""
}

// platformAdapter implements engine.Platform over a discordgo session. Notice
// delivery failures are logged and swallowed: the engine's decision has
// already taken effect and is not retried.
type platformAdapter struct {
	dg *discordgo.Session
}

func (p *platformAdapter) DeleteMessage(channelID, messageID string) {
	if err := p.dg.ChannelMessageDelete(channelID, messageID); err != nil {
		log.Printf("[WARN] Failed to delete message %s in %s: %v", messageID, channelID, err)
	}
}

func (p *platformAdapter) SendChannel(channelID, text string) {
	if _, err := p.dg.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("[WARN] Failed to send to channel %s: %v", channelID, err)
	}
}

func (p *platformAdapter) SendLog(guildID, text string) {
	ch := p.findChannel(guildID, LogChannelName)
	if ch == "" {
		return
	}
	p.SendChannel(ch, text)
}

func (p *platformAdapter) SendCoordination(guildID, text string) {
	ch := p.findChannel(guildID, CoordinationChannelName)
	if ch == "" {
		return
	}
	p.SendChannel(ch, text)
}

func (p *platformAdapter) SendDirect(actorID, text string) {
	ch, err := p.dg.UserChannelCreate(actorID)
	if err != nil {
		log.Printf("[WARN] Failed to open DM with %s: %v", actorID, err)
		return
	}
	p.SendChannel(ch.ID, text)
}

func (p *platformAdapter) Mute(guildID, actorID string) error {
	roleID, err := p.ensureMutedRole(guildID)
	if err != nil {
		return err
	}
	return p.dg.GuildMemberRoleAdd(guildID, actorID, roleID)
}

func (p *platformAdapter) Unmute(guildID, actorID string) error {
	roleID := p.findRole(guildID, MutedRoleName)
	if roleID == "" {
		return nil
	}
	return p.dg.GuildMemberRoleRemove(guildID, actorID, roleID)
}

// Communities lists the guilds that have a coordination channel, i.e. the ones
// the scheduler addresses.
func (p *platformAdapter) Communities() []string {
	var out []string
	for _, g := range p.dg.State.Guilds {
		if p.findChannel(g.ID, CoordinationChannelName) != "" {
			out = append(out, g.ID)
		}
	}
	return out
}

// ensureMutedRole returns the muted role's ID, creating the role and denying
// send/speak across all channels when it does not exist yet.
func (p *platformAdapter) ensureMutedRole(guildID string) (string, error) {
	if roleID := p.findRole(guildID, MutedRoleName); roleID != "" {
		return roleID, nil
	}

	role, err := p.dg.GuildRoleCreate(guildID, &discordgo.RoleParams{Name: MutedRoleName})
	if err != nil {
		return "", err
	}

	channels, err := p.dg.GuildChannels(guildID)
	if err != nil {
		log.Printf("[WARN] Failed to list channels for %s: %v", guildID, err)
		return role.ID, nil
	}
	deny := int64(discordgo.PermissionSendMessages | discordgo.PermissionVoiceSpeak)
	for _, ch := range channels {
		if err := p.dg.ChannelPermissionSet(ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole, 0, deny); err != nil {
			log.Printf("[WARN] Failed to set muted override on %s: %v", ch.ID, err)
		}
	}
	return role.ID, nil
}

func (p *platformAdapter) findRole(guildID, name string) string {
	guild, err := p.dg.State.Guild(guildID)
	if err != nil || guild == nil {
		return ""
	}
	for _, role := range guild.Roles {
		if role.Name == name {
			return role.ID
		}
	}
	return ""
}

func (p *platformAdapter) findChannel(guildID, name string) string {
	return FindTextChannel(p.dg, guildID, name)
}
