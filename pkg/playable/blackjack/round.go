package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// initialCards is the number of cards dealt before the player acts
const initialCards = 4

// Sink receives progress messages from a round
// Messages are purely observational. Send must not block.
type Sink interface {
	Send(messages ...*playable.LogMessage)
}

// SinkFunc adapts a function to a Sink
type SinkFunc func(messages ...*playable.LogMessage)

// Send calls f
func (f SinkFunc) Send(messages ...*playable.LogMessage) {
	f(messages...)
}

// Round is a single round of one player against the dealer
// A Round is not safe for concurrent use. Hosts serialize access per player.
type Round struct {
	UUID string

	phase    Phase
	deck     *deck.Deck
	player   deck.Hand
	dealer   deck.Hand
	outcome  Outcome
	err      error
	playerID int64
	logger   logrus.FieldLogger
	sink     Sink
}

// RoundOption configures a round
type RoundOption func(r *Round)

// WithSink sends progress messages to the sink
func WithSink(sink Sink) RoundOption {
	return func(r *Round) {
		r.sink = sink
	}
}

// WithPlayerID attributes progress messages to the player
func WithPlayerID(playerID int64) RoundOption {
	return func(r *Round) {
		r.playerID = playerID
	}
}

// NewRound returns a new round that will deal from d
// The round owns the deck from here on.
func NewRound(logger logrus.FieldLogger, d *deck.Deck, opts ...RoundOption) *Round {
	r := &Round{
		UUID:   uuid.New().String(),
		phase:  PhaseDealing,
		deck:   d,
		player: make(deck.Hand, 0, 5),
		dealer: make(deck.Hand, 0, 5),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = logger.WithField("round", r.UUID)
	return r
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	return r.phase
}

// Outcome returns the outcome, or an empty string if the round is not resolved
func (r *Round) Outcome() Outcome {
	return r.outcome
}

// Err returns the error that abandoned the round, if any
func (r *Round) Err() error {
	return r.err
}

// Deal draws two cards for the player then two for the dealer
// If the player has a natural blackjack, the round resolves immediately.
func (r *Round) Deal() error {
	if err := r.checkPhase("deal", PhaseDealing); err != nil {
		return err
	}

	if !r.deck.CanDraw(initialCards) {
		err := &InsufficientDeckError{Need: initialCards, Have: r.deck.CardsLeft()}
		r.abandon(err)
		return err
	}

	cards := make([]deck.Rank, initialCards)
	for i := range cards {
		card, err := r.deck.Draw()
		if err != nil {
			// CanDraw() passed, so this is unreachable
			panic(fmt.Sprintf("could not draw after CanDraw(%d): %v", initialCards, err))
		}

		cards[i] = card
	}

	r.player = append(r.player, cards[0], cards[1])
	r.dealer = append(r.dealer, cards[2], cards[3])

	r.sendLogMessage(r.player.Clone(), "{} was dealt %s", FormatHand(r.player))
	r.sendLogMessage([]deck.Rank{r.dealer.FirstCard()}, "Dealer shows %s", r.dealer.FirstCard())

	r.setPhase(PhasePlayerTurn)
	if IsNaturalBlackjack(r.player) {
		r.resolve()
	}

	return nil
}

// Hit draws a card for the player
// Over 21 resolves the round as a player bust. Exactly 21 ends the player's turn.
func (r *Round) Hit() (deck.Rank, error) {
	if err := r.checkPhase("hit", PhasePlayerTurn); err != nil {
		return "", err
	}

	card, err := r.deck.Draw()
	if err != nil {
		r.abandon(err)
		return "", err
	}

	r.player.AddCard(card)
	value := ValueOf(r.player)
	r.sendLogMessage([]deck.Rank{card}, "{} hit and drew %s (%d)", card, value)

	switch {
	case value > blackjack:
		r.finish(OutcomePlayerBust)
	case value == blackjack:
		r.setPhase(PhaseDealerTurn)
	}

	return card, nil
}

// Stay ends the player's turn
func (r *Round) Stay() error {
	if err := r.checkPhase("stay", PhasePlayerTurn); err != nil {
		return err
	}

	r.sendLogMessage(nil, "{} stayed on %d", ValueOf(r.player))
	r.setPhase(PhaseDealerTurn)
	return nil
}

// Apply applies a player decision
// Anything other than stay or hit is rejected with an InvalidDecisionError and the round is unchanged.
func (r *Round) Apply(decision Decision) error {
	switch decision {
	case DecisionStay:
		return r.Stay()
	case DecisionHit:
		_, err := r.Hit()
		return err
	}

	return &InvalidDecisionError{Value: fmt.Sprintf("%d", int(decision))}
}

// PlayDealer draws for the dealer while the dealer is under 17, then resolves the round
// The dealer stays on every 17, soft or hard.
func (r *Round) PlayDealer() error {
	if err := r.checkPhase("play the dealer", PhaseDealerTurn); err != nil {
		return err
	}

	r.sendLogMessage(r.dealer.Clone(), "Dealer reveals %s", FormatHand(r.dealer))

	for ValueOf(r.dealer) < dealerStandsOn {
		card, err := r.deck.Draw()
		if err != nil {
			r.abandon(err)
			return err
		}

		r.dealer.AddCard(card)
		r.sendLogMessage([]deck.Rank{card}, "Dealer drew %s (%d)", card, ValueOf(r.dealer))
	}

	if value := ValueOf(r.dealer); value <= blackjack {
		r.sendLogMessage(nil, "Dealer stayed on %d", value)
	}

	r.resolve()
	return nil
}

// State returns the full state of the round, including the dealer's hole card
func (r *Round) State() *State {
	return &State{
		UUID:        r.UUID,
		Phase:       r.phase,
		PlayerHand:  r.player.Clone(),
		PlayerValue: ValueOf(r.player),
		DealerHand:  r.dealer.Clone(),
		DealerValue: ValueOf(r.dealer),
		CardsLeft:   r.deck.CardsLeft(),
		Outcome:     r.outcome,
	}
}

// Snapshot returns a serializable copy of the round
func (r *Round) Snapshot() (*Snapshot, error) {
	if r.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRoundAbandoned, r.err)
	}

	return &Snapshot{
		UUID:       r.UUID,
		PlayerID:   r.playerID,
		Phase:      r.phase,
		Deck:       r.deck.Ranks(),
		PlayerHand: r.player.Clone(),
		DealerHand: r.dealer.Clone(),
		Outcome:    r.outcome,
	}, nil
}

// MarshalJSON encodes the round as its full state
func (r *Round) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.State())
}

func (r *Round) checkPhase(op string, want Phase) error {
	if r.err != nil {
		return fmt.Errorf("%w: %w", ErrRoundAbandoned, r.err)
	}

	if r.phase != want {
		return &PhaseError{Op: op, Phase: r.phase}
	}

	return nil
}

func (r *Round) setPhase(phase Phase) {
	r.logger.WithFields(logrus.Fields{
		"from":  r.phase,
		"phase": phase,
	}).Debug("phase changed")

	r.phase = phase
}

// resolve compares the hands and finalizes the round
func (r *Round) resolve() {
	r.finish(Resolve(r.player, r.dealer))
}

func (r *Round) finish(outcome Outcome) {
	r.outcome = outcome
	r.setPhase(PhaseResolved)
	r.sendLogMessage(nil, "%s: {} %d, dealer %d", outcome.Description(), ValueOf(r.player), ValueOf(r.dealer))
}

func (r *Round) abandon(err error) {
	r.err = err
	r.logger.WithError(err).WithField("phase", r.phase).Warn("round abandoned")
}

func (r *Round) sendLogMessage(cards []deck.Rank, format string, a ...interface{}) {
	if r.sink == nil {
		return
	}

	r.sink.Send(playable.NewLogMessage(r.playerID, cards, format, a...))
}
