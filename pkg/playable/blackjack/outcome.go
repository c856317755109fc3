package blackjack

import (
	"blackjack-server/pkg/deck"
	"fmt"
)

// Outcome is the terminal result of a round
type Outcome string

// Outcome constants
const (
	OutcomePlayerBlackjack  Outcome = "player-blackjack"
	OutcomeDealerBlackjack  Outcome = "dealer-blackjack"
	OutcomePlayerBust       Outcome = "player-bust"
	OutcomeDealerBust       Outcome = "dealer-bust"
	OutcomePlayerWinByScore Outcome = "player-win-by-score"
	OutcomeDealerWinByScore Outcome = "dealer-win-by-score"
	OutcomePush             Outcome = "push"
)

// Winner constants
const (
	WinnerPlayer = "player"
	WinnerDealer = "dealer"
)

// Valid returns true if the outcome is one of the known outcomes
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePlayerBlackjack, OutcomeDealerBlackjack, OutcomePlayerBust, OutcomeDealerBust,
		OutcomePlayerWinByScore, OutcomeDealerWinByScore, OutcomePush:
		return true
	}

	return false
}

// Winner returns "player", "dealer", or an empty string on a push
func (o Outcome) Winner() string {
	switch o {
	case OutcomePlayerBlackjack, OutcomeDealerBust, OutcomePlayerWinByScore:
		return WinnerPlayer
	case OutcomeDealerBlackjack, OutcomePlayerBust, OutcomeDealerWinByScore:
		return WinnerDealer
	case OutcomePush:
		return ""
	}

	panic(fmt.Sprintf("invalid outcome: %q", string(o)))
}

// Description returns a human readable description of the outcome
func (o Outcome) Description() string {
	switch o {
	case OutcomePlayerBlackjack:
		return "Player wins with a natural blackjack"
	case OutcomeDealerBlackjack:
		return "Dealer wins with a natural blackjack"
	case OutcomePlayerBust:
		return "Player busts, dealer wins"
	case OutcomeDealerBust:
		return "Dealer busts, player wins"
	case OutcomePlayerWinByScore:
		return "Player wins on score"
	case OutcomeDealerWinByScore:
		return "Dealer wins on score"
	case OutcomePush:
		return "Push"
	}

	panic(fmt.Sprintf("invalid outcome: %q", string(o)))
}

// Resolve compares the final hands. Each check short-circuits the next.
func Resolve(player, dealer deck.Hand) Outcome {
	playerNatural := IsNaturalBlackjack(player)
	dealerNatural := IsNaturalBlackjack(dealer)

	if playerNatural && !dealerNatural {
		return OutcomePlayerBlackjack
	}

	if dealerNatural && !playerNatural {
		return OutcomeDealerBlackjack
	}

	playerValue := ValueOf(player)
	dealerValue := ValueOf(dealer)

	switch {
	case playerValue > blackjack:
		return OutcomePlayerBust
	case dealerValue > blackjack:
		return OutcomeDealerBust
	case playerValue == dealerValue:
		return OutcomePush
	case playerValue > dealerValue:
		return OutcomePlayerWinByScore
	}

	return OutcomeDealerWinByScore
}
