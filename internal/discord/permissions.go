package discord

import (
	"hubkeeper/internal/config"

	"github.com/bwmarrin/discordgo"
)

// StaffRoles are the role names that place a member on the staff tier. Staff
// are exempt from the link filter, slowmode, and spam auto-mutes, and may use
// the moderation and admin commands.
var StaffRoles = map[string]bool{
	"Coordinator":        true,
	"Deputy Coordinator": true,
	"Moderator":          true,
}

// IsStaff reports whether a member carries a staff role, guild-administrator
// permission, or is the configured developer.
func IsStaff(s *discordgo.Session, guildID string, member *discordgo.Member, cfg *config.Config) bool {
	if member == nil {
		return false
	}
	// Member objects on message events often omit the user; roles are enough.
	if member.User != nil && cfg != nil && config.IsDeveloper(cfg, member.User.ID) {
		return true
	}

	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil || role == nil {
			continue
		}
		if StaffRoles[role.Name] {
			return true
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}
