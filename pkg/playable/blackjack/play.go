package blackjack

import (
	"context"
	"fmt"
)

// DecisionSource supplies the player's decisions
// Decide may block, for example on a terminal prompt. It receives the
// player's view of the round.
type DecisionSource interface {
	Decide(ctx context.Context, state *State) (Decision, error)
}

// DecisionFunc adapts a function to a DecisionSource
type DecisionFunc func(ctx context.Context, state *State) (Decision, error)

// Decide calls f
func (f DecisionFunc) Decide(ctx context.Context, state *State) (Decision, error) {
	return f(ctx, state)
}

// StandOn returns a source that hits until the player has at least n
func StandOn(n int) DecisionSource {
	return DecisionFunc(func(_ context.Context, state *State) (Decision, error) {
		if state.PlayerValue < n {
			return DecisionHit, nil
		}

		return DecisionStay, nil
	})
}

// PlayRound plays the round to completion and returns the outcome
// The round is dealt if it has not been already. The context is checked
// before every decision and cancelling it leaves the round in the player's turn.
func PlayRound(ctx context.Context, r *Round, source DecisionSource) (Outcome, error) {
	if r.Phase() == PhaseDealing {
		if err := r.Deal(); err != nil {
			return "", err
		}
	}

	for r.Phase() == PhasePlayerTurn {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		decision, err := source.Decide(ctx, r.State().PlayerView())
		if err != nil {
			return "", fmt.Errorf("could not get decision: %w", err)
		}

		if err := r.Apply(decision); err != nil {
			return "", err
		}
	}

	if r.Phase() == PhaseDealerTurn {
		if err := r.PlayDealer(); err != nil {
			return "", err
		}
	}

	if r.Err() != nil {
		return "", fmt.Errorf("%w: %w", ErrRoundAbandoned, r.Err())
	}

	return r.Outcome(), nil
}
