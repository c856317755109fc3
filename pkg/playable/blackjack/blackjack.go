package blackjack

import (
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"github.com/sirupsen/logrus"
)

// Game is a single round of blackjack between one player and the dealer
type Game struct {
	options  Options
	playerID int64
	round    *Round
	logChan  chan []*playable.LogMessage
	logger   logrus.FieldLogger
}

var _ playable.Playable = (*Game)(nil)

// NewGame deals a new round from the deck and returns the game
func NewGame(logger logrus.FieldLogger, playerID int64, d *deck.Deck, options Options) (*Game, error) {
	g := &Game{
		options:  options,
		playerID: playerID,
		logChan:  make(chan []*playable.LogMessage, 256),
		logger:   logger,
	}

	g.round = NewRound(logger, d, WithSink(g), WithPlayerID(playerID))
	if err := g.round.Deal(); err != nil {
		return nil, err
	}

	g.logger = logger.WithFields(logrus.Fields{
		"round":    g.round.UUID,
		"playerID": playerID,
	})

	return g, nil
}

// RestoreGame resumes a game from a round snapshot
func RestoreGame(logger logrus.FieldLogger, s *Snapshot, options Options) (*Game, error) {
	g := &Game{
		options:  options,
		playerID: s.PlayerID,
		logChan:  make(chan []*playable.LogMessage, 256),
	}

	round, err := RestoreRound(logger, s, WithSink(g))
	if err != nil {
		return nil, err
	}

	g.round = round
	g.logger = logger.WithFields(logrus.Fields{
		"round":    round.UUID,
		"playerID": s.PlayerID,
	})

	if round.Phase() == PhaseDealing {
		if err := round.Deal(); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Blackjack"
}

// Key returns a unique key
func (g *Game) Key() string {
	return "blackjack"
}

// PlayerID returns the seated player
func (g *Game) PlayerID() int64 {
	return g.playerID
}

// Action performs with a message
// The subject is the decision. When the player's turn ends, the dealer plays
// out immediately.
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if playerID != g.playerID {
		return nil, false, ErrNotParticipant
	}

	decision, err := DecisionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	if err := g.round.Apply(decision); err != nil {
		return nil, false, err
	}

	if g.round.Phase() == PhaseDealerTurn {
		if err := g.round.PlayDealer(); err != nil {
			return nil, false, err
		}
	}

	g.logger.WithFields(logrus.Fields{
		"decision": decision.String(),
		"phase":    g.round.Phase(),
	}).Debug("decision applied")

	return playable.OK(message.Context), true, nil
}

// GetPlayerState returns the current state of the game for the player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	if playerID != g.playerID {
		return nil, ErrNotParticipant
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.participantState(),
	}, nil
}

// GetEndOfGameDetails returns the details after a game is over
// If the game is still in progress, nil will be returned and the second param will be false
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.round.Phase() != PhaseResolved {
		return nil, false
	}

	return &playable.GameOverDetails{
		Results: map[int64]string{
			g.playerID: string(g.round.Outcome()),
		},
		Log: g.round.State(),
	}, true
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Send queues log messages for the host
// Messages are dropped if nobody is draining the channel.
func (g *Game) Send(messages ...*playable.LogMessage) {
	select {
	case g.logChan <- messages:
	default:
		if g.logger != nil {
			g.logger.WithField("messages", len(messages)).Warn("log channel is full, dropping messages")
		}
	}
}

// State returns the full state of the round
func (g *Game) State() *State {
	return g.round.State()
}

// Outcome returns the outcome, or an empty string if the round is not resolved
func (g *Game) Outcome() Outcome {
	return g.round.Outcome()
}

// Err returns the error that abandoned the round, if any
func (g *Game) Err() error {
	return g.round.Err()
}

// Snapshot returns a serializable copy of the round
func (g *Game) Snapshot() (*Snapshot, error) {
	return g.round.Snapshot()
}

func (g *Game) participantState() *ParticipantState {
	state := g.round.State()
	if !g.options.RevealHoleCard {
		state = state.PlayerView()
	}

	actions := make([]Decision, 0, 2)
	if state.Phase == PhasePlayerTurn && g.round.Err() == nil {
		actions = append(actions, DecisionStay, DecisionHit)
	}

	return &ParticipantState{
		State:   state,
		Actions: actions,
	}
}
