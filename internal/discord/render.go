package discord

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// RenderState renders the round as message content
func RenderState(state *blackjack.State) string {
	var sb strings.Builder
	sb.WriteString("**Blackjack**\n")
	sb.WriteString(fmt.Sprintf("Dealer: %s\n", renderHand(state.DealerHand, state.HiddenCards, state.DealerValue)))
	sb.WriteString(fmt.Sprintf("You: %s", renderHand(state.PlayerHand, 0, state.PlayerValue)))

	if state.Outcome != "" {
		sb.WriteString(fmt.Sprintf("\n**%s**", state.Outcome.Description()))
	}

	return sb.String()
}

func renderHand(hand deck.Hand, hidden int, value int) string {
	cards := make([]string, 0, len(hand)+hidden)
	for _, card := range hand {
		cards = append(cards, fmt.Sprintf("`%s`", card))
	}

	for i := 0; i < hidden; i++ {
		cards = append(cards, "`?`")
	}

	return fmt.Sprintf("%s (%d)", strings.Join(cards, " "), value)
}

func components(ps *blackjack.ParticipantState) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, 2)
	for _, action := range ps.Actions {
		switch action {
		case blackjack.DecisionHit:
			buttons = append(buttons, discordgo.Button{
				Label:    "Hit",
				Style:    discordgo.PrimaryButton,
				CustomID: customIDHit,
			})
		case blackjack.DecisionStay:
			buttons = append(buttons, discordgo.Button{
				Label:    "Stay",
				Style:    discordgo.SecondaryButton,
				CustomID: customIDStay,
			})
		}
	}

	if len(buttons) == 0 {
		buttons = append(buttons, discordgo.Button{
			Label:    "Deal again",
			Style:    discordgo.SuccessButton,
			CustomID: customIDNew,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}
