package room

import (
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"fmt"
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Dealer runs the rounds for a single player
type Dealer struct {
	pitBoss  *PitBoss
	playerID int64
	logger   logrus.FieldLogger

	// lock guards the game, the log and lastActive
	lock        sync.Mutex
	game        *blackjack.Game
	logMessages []*playable.LogMessage
	lastActive  time.Time

	clientLock sync.RWMutex
	clients    map[*Client]bool
}

// NewDealer creates a new dealer object
func NewDealer(pitBoss *PitBoss, playerID int64) *Dealer {
	return &Dealer{
		pitBoss:     pitBoss,
		playerID:    playerID,
		logger:      pitBoss.logger.WithField("playerID", playerID),
		logMessages: make([]*playable.LogMessage, 0, logMessageLimit),
		lastActive:  pitBoss.clock.Now(),
		clients:     make(map[*Client]bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.clientLock.RLock()
	defer d.clientLock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient adds a client and sends it the current state
func (d *Dealer) AddClient(client *Client) {
	d.clientLock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.clientLock.Unlock()

	d.lock.Lock()
	defer d.lock.Unlock()

	d.touch()
	if d.game == nil {
		return
	}

	gs, err := d.game.GetPlayerState(d.playerID)
	if err != nil {
		d.logger.WithError(err).Error("could not get player state")
		return
	}

	client.Send(gs)
}

// RemoveClient removes a client
// Returns true if it was the last client
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.clientLock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.clientLock.Unlock()

	d.lock.Lock()
	d.touch()
	d.lock.Unlock()

	return nClients == 0
}

// StartRound deals a new round
// A resolved or abandoned round is replaced. An unresolved one is not.
func (d *Dealer) StartRound(data playable.AdditionalData) (*playable.Response, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.touch()
	if d.inProgress() {
		return nil, ErrRoundInProgress
	}

	options := blackjack.OptionsFromData(d.pitBoss.options, data)
	game, err := blackjack.NewGame(d.logger, d.playerID, d.pitBoss.shuffle(), options)
	if err != nil {
		return nil, err
	}

	d.game = game
	d.logMessages = d.logMessages[:0]
	d.logger.WithField("round", game.State().UUID).Info("round started")

	d.drainLogMessages()
	d.afterChange()
	return d.game.GetPlayerState(d.playerID)
}

// Action applies a decision from the player
func (d *Dealer) Action(msg *playable.PayloadIn) (*playable.Response, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.touch()
	if d.game == nil {
		return nil, ErrNoRound
	}

	resp, updateState, err := d.game.Action(d.playerID, msg)
	d.drainLogMessages()
	if err != nil {
		if abandonErr := d.game.Err(); abandonErr != nil {
			d.logger.WithError(abandonErr).Error("round abandoned")
		}

		return nil, err
	}

	if updateState {
		d.afterChange()
	}

	return resp, nil
}

// State returns the player's view of the current round
func (d *Dealer) State() (*playable.Response, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.touch()
	if d.game == nil {
		return nil, ErrNoRound
	}

	return d.game.GetPlayerState(d.playerID)
}

// Abandon discards the current round
func (d *Dealer) Abandon() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.touch()
	if d.game == nil {
		return ErrNoRound
	}

	d.logger.WithField("round", d.game.State().UUID).Info("round abandoned by player")
	d.game = nil
	d.sendToClients(&playable.Response{Key: "gameEnded"})
	return nil
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	var resp *playable.Response
	var err error

	switch msg.Action {
	case "start":
		resp, err = d.StartRound(msg.AdditionalData)
	case "decision":
		resp, err = d.Action(msg)
	case "state":
		resp, err = d.State()
	case "abandon":
		if err = d.Abandon(); err == nil {
			resp = playable.OK()
		}
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)
	}

	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	resp.Context = msg.Context
	c.Send(resp)
}

// inProgress returns true if the current round still needs the player
// NOTE: must be called with the lock held
func (d *Dealer) inProgress() bool {
	if d.game == nil || d.game.Err() != nil {
		return false
	}

	_, isOver := d.game.GetEndOfGameDetails()
	return !isOver
}

// afterChange sends the state to every client and logs the result once the round is over
// NOTE: must be called with the lock held
func (d *Dealer) afterChange() {
	if gs, err := d.game.GetPlayerState(d.playerID); err == nil {
		d.sendToClients(gs)
	}

	if details, isOver := d.game.GetEndOfGameDetails(); isOver {
		d.logger.WithFields(logrus.Fields{
			"round":   d.game.State().UUID,
			"outcome": details.Results[d.playerID],
		}).Info("round resolved")
	}
}

// drainLogMessages moves everything the game has logged into the bounded log
// NOTE: must be called with the lock held
func (d *Dealer) drainLogMessages() {
	for {
		select {
		case messages := <-d.game.LogChan():
			d.addLogMessages(messages)
			d.sendToClients(&playable.Response{
				Key:  "log",
				Data: messages,
			})
		default:
			return
		}
	}
}

func (d *Dealer) sendToClients(msg interface{}) {
	for _, client := range d.Clients() {
		if !client.Send(msg) {
			d.logger.WithField("client", client.String()).Warn("client send buffer is full")
		}
	}
}

// NOTE: must be called with the lock held
func (d *Dealer) touch() {
	d.lastActive = d.pitBoss.clock.Now()
}

func (d *Dealer) isIdle(now time.Time, timeout time.Duration) bool {
	d.clientLock.RLock()
	nClients := len(d.clients)
	d.clientLock.RUnlock()

	if nClients > 0 {
		return false
	}

	d.lock.Lock()
	defer d.lock.Unlock()

	return now.Sub(d.lastActive) >= timeout
}
