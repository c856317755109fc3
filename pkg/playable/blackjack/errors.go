package blackjack

import (
	"errors"
	"fmt"
)

// ErrRoundAbandoned is returned when an action is attempted on a round that failed
var ErrRoundAbandoned = errors.New("round was abandoned")

// ErrNotParticipant is returned when someone other than the seated player acts
var ErrNotParticipant = errors.New("player is not in this game")

// ErrInvalidSnapshot is returned when a snapshot cannot be restored
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// InsufficientDeckError is returned when the initial deal cannot get enough cards
type InsufficientDeckError struct {
	Need int
	Have int
}

func (i *InsufficientDeckError) Error() string {
	return fmt.Sprintf("need %d cards to deal, deck has %d", i.Need, i.Have)
}

// InvalidDecisionError is returned for a decision other than stay or hit
type InvalidDecisionError struct {
	Value string
}

func (i *InvalidDecisionError) Error() string {
	return fmt.Sprintf("invalid decision: %q (expected stay or hit)", i.Value)
}

// PhaseError is returned when an operation is attempted in the wrong phase
type PhaseError struct {
	Op    string
	Phase Phase
}

func (p *PhaseError) Error() string {
	return fmt.Sprintf("cannot %s from phase: %s", p.Op, p.Phase)
}
