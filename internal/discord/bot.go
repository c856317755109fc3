package discord

import (
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Responder sends interaction responses
// *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Bot plays blackjack over Discord interactions
// Every Discord user gets their own round through the pit boss.
type Bot struct {
	pitBoss *room.PitBoss
	logger  logrus.FieldLogger
}

// NewBot returns a new bot
func NewBot(logger logrus.FieldLogger, pitBoss *room.PitBoss) *Bot {
	return &Bot{
		pitBoss: pitBoss,
		logger:  logger,
	}
}

// HandleInteraction is the handler registered with the session
func (b *Bot) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.Handle(s, i.Interaction); err != nil {
		b.logger.WithError(err).Error("could not respond to interaction")
	}
}

// Handle responds to a slash command or a button press
func (b *Bot) Handle(r Responder, i *discordgo.Interaction) error {
	playerID, err := userID(i)
	if err != nil {
		return respondWithError(r, i, "Could not identify you")
	}

	log := b.logger.WithField("playerID", playerID)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		if data.Name != CommandName {
			return respondWithError(r, i, fmt.Sprintf("Unknown command: %s", data.Name))
		}

		return b.deal(r, i, playerID, commandOptions(data), discordgo.InteractionResponseChannelMessageWithSource)
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		log.WithField("customID", customID).Debug("button pressed")

		switch customID {
		case customIDHit:
			return b.decide(r, i, playerID, blackjack.DecisionHit)
		case customIDStay:
			return b.decide(r, i, playerID, blackjack.DecisionStay)
		case customIDNew:
			return b.deal(r, i, playerID, nil, discordgo.InteractionResponseUpdateMessage)
		}

		return respondWithError(r, i, "Unknown blackjack action")
	}

	log.WithField("type", i.Type.String()).Warn("unexpected interaction")
	return nil
}

func (b *Bot) deal(r Responder, i *discordgo.Interaction, playerID int64, data playable.AdditionalData, responseType discordgo.InteractionResponseType) error {
	resp, err := b.pitBoss.StartRound(playerID, data)
	if errors.Is(err, room.ErrRoundInProgress) {
		return respondWithError(r, i, "You already have a round in progress. Finish it first.")
	} else if err != nil {
		b.logger.WithError(err).WithField("playerID", playerID).Error("could not start round")
		return respondWithError(r, i, "The dealer could not deal a round")
	}

	return respondWithRound(r, i, resp, responseType)
}

func (b *Bot) decide(r Responder, i *discordgo.Interaction, playerID int64, decision blackjack.Decision) error {
	if _, err := b.pitBoss.Action(playerID, &playable.PayloadIn{
		Action:  "decision",
		Subject: decision.String(),
	}); err != nil {
		return respondWithError(r, i, errorMessage(err))
	}

	resp, err := b.pitBoss.State(playerID)
	if err != nil {
		return respondWithError(r, i, errorMessage(err))
	}

	return respondWithRound(r, i, resp, discordgo.InteractionResponseUpdateMessage)
}

func respondWithRound(r Responder, i *discordgo.Interaction, resp *playable.Response, responseType discordgo.InteractionResponseType) error {
	ps, ok := resp.Data.(*blackjack.ParticipantState)
	if !ok {
		return fmt.Errorf("unexpected round data: %T", resp.Data)
	}

	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: responseType,
		Data: &discordgo.InteractionResponseData{
			Content:    RenderState(ps.State),
			Components: components(ps),
		},
	})
}

func respondWithError(r Responder, i *discordgo.Interaction, message string) error {
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func errorMessage(err error) string {
	var phaseErr *blackjack.PhaseError
	switch {
	case errors.Is(err, room.ErrNoRound):
		return "You do not have a round. Use /blackjack to deal one."
	case errors.As(err, &phaseErr):
		return "That round is over. Deal again to play another."
	case errors.Is(err, blackjack.ErrRoundAbandoned):
		return "That round had to be abandoned. Deal again to play another."
	}

	return "Something went wrong: " + err.Error()
}

func commandOptions(data discordgo.ApplicationCommandInteractionData) playable.AdditionalData {
	opts := playable.AdditionalData{}
	for _, opt := range data.Options {
		if opt.Name == "reveal" && opt.Type == discordgo.ApplicationCommandOptionBoolean {
			opts["revealHoleCard"] = opt.BoolValue()
		}
	}

	return opts
}

func userID(i *discordgo.Interaction) (int64, error) {
	var user *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	} else {
		user = i.User
	}

	if user == nil {
		return 0, errors.New("interaction has no user")
	}

	// Discord IDs are 64-bit integers stored as strings
	return strconv.ParseInt(user.ID, 10, 64)
}
