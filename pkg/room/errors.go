package room

import "errors"

// ErrRoundInProgress is returned when a round is started while the player's current round is unresolved
var ErrRoundInProgress = errors.New("a round is already in progress")

// ErrNoRound is returned when the player has no round
var ErrNoRound = errors.New("no round in progress")

// ErrUnknownAction is returned for a client message the dealer does not understand
var ErrUnknownAction = errors.New("unknown action")
