package blackjack

import (
	"blackjack-server/pkg/deck"
	"fmt"
	"github.com/sirupsen/logrus"
)

// RestoreRound rebuilds a round from a snapshot
// The snapshot must describe a reachable position. A round restored into the
// player's turn resumes from the next decision.
func RestoreRound(logger logrus.FieldLogger, s *Snapshot, opts ...RoundOption) (*Round, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}

	if err := validateSnapshot(s); err != nil {
		return nil, err
	}

	d, err := deck.FromRanks(s.Deck...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	r := NewRound(logger, d, append([]RoundOption{WithPlayerID(s.PlayerID)}, opts...)...)
	if s.UUID != "" {
		r.UUID = s.UUID
		r.logger = logger.WithField("round", r.UUID)
	}

	r.phase = s.Phase
	r.player = append(r.player, s.PlayerHand...)
	r.dealer = append(r.dealer, s.DealerHand...)
	r.outcome = s.Outcome

	return r, nil
}

func validateSnapshot(s *Snapshot) error {
	invalid := func(format string, a ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, fmt.Sprintf(format, a...))
	}

	// every card of the round comes from one 52 card deck
	copies := deck.Size / len(deck.Ranks())
	counts := make(map[deck.Rank]int)
	for _, cards := range [][]deck.Rank{s.Deck, s.PlayerHand, s.DealerHand} {
		for _, card := range cards {
			if !card.Valid() {
				return invalid("unknown rank: %q", string(card))
			}

			if counts[card]++; counts[card] > copies {
				return invalid("more than %d of rank %s", copies, card)
			}
		}
	}

	if !s.Phase.Valid() {
		return invalid("unknown phase: %q", string(s.Phase))
	}

	if s.Phase != PhaseDealing && (len(s.PlayerHand) < 2 || len(s.DealerHand) < 2) {
		return invalid("%s requires both hands to be dealt", s.Phase)
	}

	switch s.Phase {
	case PhaseDealing:
		if len(s.PlayerHand) > 0 || len(s.DealerHand) > 0 {
			return invalid("hands must be empty before the deal")
		}
	case PhasePlayerTurn:
		if v := ValueOf(s.PlayerHand); v >= blackjack {
			return invalid("player cannot act on %d", v)
		}

		if len(s.DealerHand) != 2 {
			return invalid("dealer cannot draw before the dealer turn")
		}
	case PhaseDealerTurn:
		if v := ValueOf(s.PlayerHand); v > blackjack {
			return invalid("player busted with %d", v)
		}

		if len(s.DealerHand) != 2 {
			return invalid("dealer cannot draw before the dealer turn")
		}
	case PhaseResolved:
		if !s.Outcome.Valid() {
			return invalid("resolved round has outcome %q", string(s.Outcome))
		}

		return nil
	}

	if s.Outcome != "" {
		return invalid("%s round cannot have an outcome", s.Phase)
	}

	return nil
}
