package blackjack

import "blackjack-server/pkg/deck"

// Phase is the phase of a round
type Phase string

// Phase constants
const (
	// PhaseDealing is before the initial four cards are dealt
	PhaseDealing Phase = "dealing"

	// PhasePlayerTurn means the player must stay or hit
	PhasePlayerTurn Phase = "player-turn"

	// PhaseDealerTurn means the dealer draws until 17 or more
	PhaseDealerTurn Phase = "dealer-turn"

	// PhaseResolved means the outcome is final
	PhaseResolved Phase = "resolved"
)

// Valid returns true if the phase is known
func (p Phase) Valid() bool {
	switch p {
	case PhaseDealing, PhasePlayerTurn, PhaseDealerTurn, PhaseResolved:
		return true
	}

	return false
}

// State is a point-in-time view of a round
// Values are recomputed from the hands every time a State is built.
type State struct {
	UUID        string    `json:"uuid"`
	Phase       Phase     `json:"phase"`
	PlayerHand  deck.Hand `json:"playerHand"`
	PlayerValue int       `json:"playerValue"`
	DealerHand  deck.Hand `json:"dealerHand"`
	DealerValue int       `json:"dealerValue"`
	HiddenCards int       `json:"hiddenCards"`
	CardsLeft   int       `json:"cardsLeft"`
	Outcome     Outcome   `json:"outcome,omitempty"`
}

// PlayerView returns a copy of the state with the dealer's hole card
// face down while the player is still deciding
func (s *State) PlayerView() *State {
	view := *s
	if view.Phase == PhasePlayerTurn && len(view.DealerHand) > 1 {
		view.HiddenCards = len(view.DealerHand) - 1
		view.DealerHand = view.DealerHand[:1].Clone()
		view.DealerValue = ValueOf(view.DealerHand)
	}

	return &view
}

// ParticipantState is the state sent to the player
type ParticipantState struct {
	State   *State     `json:"state"`
	Actions []Decision `json:"actions"`
}

// Snapshot is a serializable copy of a round that can be restored with RestoreRound
type Snapshot struct {
	UUID       string      `json:"uuid"`
	PlayerID   int64       `json:"playerId"`
	Phase      Phase       `json:"phase"`
	Deck       []deck.Rank `json:"deck"`
	PlayerHand deck.Hand   `json:"playerHand"`
	DealerHand deck.Hand   `json:"dealerHand"`
	Outcome    Outcome     `json:"outcome,omitempty"`
}
