package command

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

const EmbedColor = 0x4169e1

// Respond answers an interaction with a public message.
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	respond(s, i, text, false)
}

// RespondEphemeral answers an interaction with a message only the invoker sees.
// Rejections (permission denied, invalid input) go through here.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	respond(s, i, text, true)
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, text string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: text}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Println("[WARN] Failed to respond to interaction:", err)
	}
}

// RespondEmbedEphemeral answers with an ephemeral embed.
func RespondEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Println("[WARN] Failed to respond to interaction:", err)
	}
}

// OptionMap indexes an interaction's options by name.
func OptionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := map[string]*discordgo.ApplicationCommandInteractionDataOption{}
	for _, opt := range i.ApplicationCommandData().Options {
		out[opt.Name] = opt
	}
	return out
}
