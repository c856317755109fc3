package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CommandName is the slash command that deals a round
const CommandName = "blackjack"

const (
	customIDHit  = "blackjack:hit"
	customIDStay = "blackjack:stay"
	customIDNew  = "blackjack:new"
)

// Commands defines all slash commands for the bot
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandName,
		Description: "Deal a round of blackjack against the dealer",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "reveal",
				Description: "Show the dealer's hole card from the deal",
			},
		},
	},
}

// Register overwrites the bot's slash commands
// An empty guildID registers them globally.
func Register(s *discordgo.Session, applicationID, guildID string) error {
	_, err := s.ApplicationCommandBulkOverwrite(applicationID, guildID, Commands)
	return err
}
