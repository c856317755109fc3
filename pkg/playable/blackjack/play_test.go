package blackjack

import (
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestStandOn(t *testing.T) {
	a := assert.New(t)

	source := StandOn(17)
	decision, err := source.Decide(context.Background(), &State{PlayerValue: 16})
	a.NoError(err)
	a.Equal(DecisionHit, decision)

	decision, err = source.Decide(context.Background(), &State{PlayerValue: 17})
	a.NoError(err)
	a.Equal(DecisionStay, decision)
}

func TestPlayRound(t *testing.T) {
	a := assert.New(t)

	r := NewRound(logrus.StandardLogger(), deckFrom(t, "K,2,10,6,4,3,7"))
	outcome, err := PlayRound(context.Background(), r, StandOn(17))
	a.NoError(err)

	// player hits 12 -> 16 -> 19, dealer draws 7 on 16
	a.Equal(hand("K,2,4,3"), r.player)
	a.Equal(hand("10,6,7"), r.dealer)
	a.Equal(OutcomeDealerBust, outcome)
	a.Equal(PhaseResolved, r.Phase())
}

func TestPlayRound_seesPlayerView(t *testing.T) {
	a := assert.New(t)

	var seen []*State
	source := DecisionFunc(func(_ context.Context, state *State) (Decision, error) {
		seen = append(seen, state)
		return DecisionStay, nil
	})

	r := NewRound(logrus.StandardLogger(), deckFrom(t, "K,8,10,6,9"))
	outcome, err := PlayRound(context.Background(), r, source)
	a.NoError(err)
	a.Equal(OutcomeDealerBust, outcome)

	a.Len(seen, 1)
	a.Equal(hand("10"), seen[0].DealerHand)
	a.Equal(1, seen[0].HiddenCards)
}

func TestPlayRound_natural(t *testing.T) {
	a := assert.New(t)

	source := DecisionFunc(func(_ context.Context, _ *State) (Decision, error) {
		t.Fatal("should not ask for a decision")
		return 0, nil
	})

	r := NewRound(logrus.StandardLogger(), deckFrom(t, "A,K,Q,9"))
	outcome, err := PlayRound(context.Background(), r, source)
	a.NoError(err)
	a.Equal(OutcomePlayerBlackjack, outcome)
}

func TestPlayRound_errors(t *testing.T) {
	a := assert.New(t)

	_, err := PlayRound(context.Background(), NewRound(logrus.StandardLogger(), deckFrom(t, "K")), StandOn(17))
	var insufficient *InsufficientDeckError
	a.True(errors.As(err, &insufficient))

	_, err = PlayRound(context.Background(), NewRound(logrus.StandardLogger(), deckFrom(t, "K,2,10,6")), StandOn(17))
	a.True(errors.Is(err, deck.ErrEmptyDeck))

	sourceErr := errors.New("stdin closed")
	_, err = PlayRound(context.Background(), NewRound(logrus.StandardLogger(), deckFrom(t, "K,2,10,6")), DecisionFunc(func(context.Context, *State) (Decision, error) {
		return 0, sourceErr
	}))
	a.True(errors.Is(err, sourceErr))
	a.EqualError(err, "could not get decision: stdin closed")

	_, err = PlayRound(context.Background(), NewRound(logrus.StandardLogger(), deckFrom(t, "K,2,10,6")), DecisionFunc(func(context.Context, *State) (Decision, error) {
		return Decision(0), nil
	}))
	a.EqualError(err, `invalid decision: "0" (expected stay or hit)`)
}

func TestPlayRound_cancelled(t *testing.T) {
	a := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	source := DecisionFunc(func(_ context.Context, _ *State) (Decision, error) {
		calls++
		cancel()
		return DecisionHit, nil
	})

	r := NewRound(logrus.StandardLogger(), deckFrom(t, "K,2,10,6,2,2"))
	_, err := PlayRound(ctx, r, source)
	a.True(errors.Is(err, context.Canceled))
	a.Equal(1, calls)
	a.Equal(PhasePlayerTurn, r.Phase())
	a.Equal(hand("K,2,2"), r.player)
}

func TestPlayRound_outcomesAreConsistent(t *testing.T) {
	a := assert.New(t)

	for seed := int64(0); seed < 200; seed++ {
		r := NewRound(logrus.StandardLogger(), deck.NewShuffled(rng.NewSeeded(seed)))
		outcome, err := PlayRound(context.Background(), r, StandOn(int(seed%6)+12))
		a.NoError(err)
		a.True(outcome.Valid())

		if outcome == OutcomePlayerBust {
			a.True(IsBust(r.player))
			a.Len(r.dealer, 2)
			continue
		}

		a.Equal(Resolve(r.player, r.dealer), outcome, "seed %d", seed)
	}
}
