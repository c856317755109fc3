package room

import (
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"context"
	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// DefaultIdleTimeout is how long a player's seat is kept without activity
const DefaultIdleTimeout = time.Minute * 15

// PitBoss is responsible for dispatching players to their dealer
// Every player gets their own dealer, so rounds never share a deck.
type PitBoss struct {
	logger      logrus.FieldLogger
	clock       quartz.Clock
	idleTimeout time.Duration
	options     blackjack.Options
	newDeck     func() *deck.Deck

	deckLock sync.Mutex
	lock     sync.Mutex
	dealers  map[int64]*Dealer
}

// Option configures a PitBoss
type Option func(p *PitBoss)

// WithClock sets the clock used for idle expiry
func WithClock(clock quartz.Clock) Option {
	return func(p *PitBoss) {
		p.clock = clock
	}
}

// WithIdleTimeout sets how long an idle seat is kept
func WithIdleTimeout(d time.Duration) Option {
	return func(p *PitBoss) {
		p.idleTimeout = d
	}
}

// WithGenerator shuffles every new deck with gen
func WithGenerator(gen rng.Generator) Option {
	return func(p *PitBoss) {
		p.newDeck = func() *deck.Deck {
			return deck.NewShuffled(gen)
		}
	}
}

// WithDeckFunc sets the function that builds the deck for each new round
func WithDeckFunc(fn func() *deck.Deck) Option {
	return func(p *PitBoss) {
		p.newDeck = fn
	}
}

// WithOptions sets the default game options
func WithOptions(options blackjack.Options) Option {
	return func(p *PitBoss) {
		p.options = options
	}
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, opts ...Option) *PitBoss {
	p := &PitBoss{
		logger:      logger,
		clock:       quartz.NewReal(),
		idleTimeout: DefaultIdleTimeout,
		options:     blackjack.DefaultOptions(),
		dealers:     make(map[int64]*Dealer),
	}

	WithGenerator(rng.Crypto{})(p)
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// StartShift sweeps idle seats every interval until the context is done
func (p *PitBoss) StartShift(ctx context.Context, interval time.Duration) quartz.Waiter {
	return p.clock.TickerFunc(ctx, interval, func() error {
		if n := p.Sweep(); n > 0 {
			p.logger.WithField("seats", n).Info("swept idle seats")
		}

		return nil
	}, "pitboss", "sweep")
}

// Sweep removes seats that have been idle for at least the idle timeout and
// have no connected clients. It returns how many were removed.
func (p *PitBoss) Sweep() int {
	now := p.clock.Now()

	p.lock.Lock()
	defer p.lock.Unlock()

	n := 0
	for playerID, dealer := range p.dealers {
		if dealer.isIdle(now, p.idleTimeout) {
			dealer.logger.Debug("seat expired")
			delete(p.dealers, playerID)
			n++
		}
	}

	return n
}

// Seats returns the number of players with a seat
func (p *PitBoss) Seats() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// StartRound starts a new round for the player
func (p *PitBoss) StartRound(playerID int64, data playable.AdditionalData) (*playable.Response, error) {
	return p.dealer(playerID, true).StartRound(data)
}

// Action applies a player's decision to their current round
func (p *PitBoss) Action(playerID int64, msg *playable.PayloadIn) (*playable.Response, error) {
	dealer := p.dealer(playerID, false)
	if dealer == nil {
		return nil, ErrNoRound
	}

	return dealer.Action(msg)
}

// State returns the player's view of their current round
func (p *PitBoss) State(playerID int64) (*playable.Response, error) {
	dealer := p.dealer(playerID, false)
	if dealer == nil {
		return nil, ErrNoRound
	}

	return dealer.State()
}

// LogMessages returns the most recent log messages for the player
func (p *PitBoss) LogMessages(playerID int64) []*playable.LogMessage {
	dealer := p.dealer(playerID, false)
	if dealer == nil {
		return []*playable.LogMessage{}
	}

	return dealer.LogMessages()
}

// Abandon discards the player's current round
func (p *PitBoss) Abandon(playerID int64) error {
	dealer := p.dealer(playerID, false)
	if dealer == nil {
		return ErrNoRound
	}

	return dealer.Abandon()
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.logger.WithField("player", client.String()).Debug("client connected")
	p.dealer(client.playerID, true).AddClient(client)
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	log := p.logger.WithField("player", client.String())
	if client.CloseError != nil {
		log = log.WithError(client.CloseError)
	}

	log.Debug("client disconnected")
	if dealer := p.dealer(client.playerID, false); dealer != nil {
		dealer.RemoveClient(client)
	}
}

// CloseClients asks every connected client to close with the reason
// It returns the number of clients asked.
func (p *PitBoss) CloseClients(reason string) int {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}
	p.lock.Unlock()

	n := 0
	for _, dealer := range dealers {
		for _, client := range dealer.Clients() {
			if client.Disconnect(reason) {
				n++
			}
		}
	}

	if n > 0 {
		p.logger.WithField("clients", n).WithField("reason", reason).Info("closing clients")
	}

	return n
}

// dealer looks up the player's seat, creating it if asked
// The seat is touched before p.lock is released so a concurrent Sweep cannot
// expire it between the lookup and the caller's use of it.
func (p *PitBoss) dealer(playerID int64, create bool) *Dealer {
	p.lock.Lock()
	defer p.lock.Unlock()

	dealer, found := p.dealers[playerID]
	if !found {
		if !create {
			return nil
		}

		dealer = NewDealer(p, playerID)
		p.dealers[playerID] = dealer
		return dealer
	}

	dealer.lock.Lock()
	dealer.touch()
	dealer.lock.Unlock()

	return dealer
}

func (p *PitBoss) shuffle() *deck.Deck {
	p.deckLock.Lock()
	defer p.deckLock.Unlock()

	return p.newDeck()
}
