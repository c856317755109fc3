package room

import (
	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/playable/blackjack"
	"context"
	"errors"
	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func forcedDeck(cards string) func() *deck.Deck {
	return func() *deck.Deck {
		d, err := deck.FromRanks(deck.RanksFromString(cards)...)
		if err != nil {
			panic(err)
		}

		return d
	}
}

func newTestPitBoss(cards string, opts ...Option) *PitBoss {
	return NewPitBoss(logrus.StandardLogger(), append([]Option{WithDeckFunc(forcedDeck(cards))}, opts...)...)
}

func participantState(t *testing.T, resp *playable.Response) *blackjack.ParticipantState {
	t.Helper()

	ps, ok := resp.Data.(*blackjack.ParticipantState)
	if !ok {
		t.Fatalf("expected participant state, got %T", resp.Data)
	}

	return ps
}

func TestPitBoss_StartRound(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6,4,7")
	resp, err := p.StartRound(1, nil)
	a.NoError(err)
	a.Equal("game", resp.Key)
	a.Equal(blackjack.PhasePlayerTurn, participantState(t, resp).State.Phase)
	a.Equal(1, p.Seats())

	_, err = p.StartRound(1, nil)
	a.True(errors.Is(err, ErrRoundInProgress))

	// other players are independent
	_, err = p.StartRound(2, nil)
	a.NoError(err)
	a.Equal(2, p.Seats())

	resp, err = p.Action(1, &playable.PayloadIn{Subject: "hit"})
	a.NoError(err)
	a.Equal(playable.OK(), resp)

	_, err = p.Action(1, &playable.PayloadIn{Subject: "stay"})
	a.NoError(err)

	resp, err = p.State(1)
	a.NoError(err)
	ps := participantState(t, resp)
	a.Equal(blackjack.OutcomeDealerBust, ps.State.Outcome)
	a.Empty(ps.Actions)

	// player 2's round is untouched
	resp, err = p.State(2)
	a.NoError(err)
	a.Equal(blackjack.PhasePlayerTurn, participantState(t, resp).State.Phase)

	// a resolved round can be replaced
	resp, err = p.StartRound(1, nil)
	a.NoError(err)
	a.Equal(blackjack.PhasePlayerTurn, participantState(t, resp).State.Phase)
}

func TestPitBoss_StartRound_options(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6")
	resp, err := p.StartRound(1, playable.AdditionalData{"revealHoleCard": true})
	a.NoError(err)
	a.Len(participantState(t, resp).State.DealerHand, 2)

	p = newTestPitBoss("K,2,10,6", WithOptions(blackjack.Options{RevealHoleCard: true}))
	resp, err = p.StartRound(1, nil)
	a.NoError(err)
	a.Len(participantState(t, resp).State.DealerHand, 2)

	p = newTestPitBoss("K,2,10,6")
	resp, err = p.StartRound(1, nil)
	a.NoError(err)
	a.Len(participantState(t, resp).State.DealerHand, 1)
}

func TestPitBoss_StartRound_abandonedRound(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6")
	_, err := p.StartRound(1, nil)
	a.NoError(err)

	_, err = p.Action(1, &playable.PayloadIn{Subject: "hit"})
	a.True(errors.Is(err, deck.ErrEmptyDeck))

	// the abandoned round does not block a new one
	_, err = p.StartRound(1, nil)
	a.NoError(err)

	p = newTestPitBoss("K,2,10")
	_, err = p.StartRound(1, nil)
	a.EqualError(err, "need 4 cards to deal, deck has 3")

	_, err = p.State(1)
	a.True(errors.Is(err, ErrNoRound))
}

func TestPitBoss_noRound(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6")
	_, err := p.State(1)
	a.True(errors.Is(err, ErrNoRound))

	_, err = p.Action(1, &playable.PayloadIn{Subject: "hit"})
	a.True(errors.Is(err, ErrNoRound))

	a.True(errors.Is(p.Abandon(1), ErrNoRound))
	a.Empty(p.LogMessages(1))
	a.Equal(0, p.Seats())
}

func TestPitBoss_Abandon(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6")
	_, err := p.StartRound(1, nil)
	a.NoError(err)

	a.NoError(p.Abandon(1))
	_, err = p.State(1)
	a.True(errors.Is(err, ErrNoRound))

	_, err = p.StartRound(1, nil)
	a.NoError(err)
}

func TestPitBoss_LogMessages(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6,4")
	_, err := p.StartRound(1, nil)
	a.NoError(err)
	_, err = p.Action(1, &playable.PayloadIn{Subject: "hit"})
	a.NoError(err)

	messages := p.LogMessages(1)
	a.Len(messages, 3)
	a.Equal("{} was dealt K, 2 (12)", messages[0].Message)
	a.Equal("Dealer shows 10", messages[1].Message)
	a.Equal("{} hit and drew 4 (16)", messages[2].Message)

	// a new round starts a fresh log
	a.NoError(p.Abandon(1))
	_, err = p.StartRound(1, nil)
	a.NoError(err)
	a.Len(p.LogMessages(1), 2)
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)

	d := NewDealer(newTestPitBoss("K"), 1)
	for i := 0; i < 30; i++ {
		d.addLogMessages(playable.SimpleLogMessageSlice(1, "message %d", i))
	}

	messages := d.LogMessages()
	a.Len(messages, logMessageLimit)
	a.Equal("message 5", messages[0].Message)
	a.Equal("message 29", messages[logMessageLimit-1].Message)
}

func TestPitBoss_Sweep(t *testing.T) {
	a := assert.New(t)

	clock := quartz.NewMock(t)
	p := newTestPitBoss("K,2,10,6", WithClock(clock), WithIdleTimeout(time.Minute*15))

	_, err := p.StartRound(1, nil)
	a.NoError(err)

	clock.Advance(time.Minute * 10)
	_, err = p.StartRound(2, nil)
	a.NoError(err)

	a.Equal(0, p.Sweep())
	a.Equal(2, p.Seats())

	clock.Advance(time.Minute * 5)
	a.Equal(1, p.Sweep())
	a.Equal(1, p.Seats())

	_, err = p.State(1)
	a.True(errors.Is(err, ErrNoRound))

	// activity resets the idle timer
	clock.Advance(time.Minute * 9)
	_, err = p.State(2)
	a.NoError(err)
	clock.Advance(time.Minute * 9)
	a.Equal(0, p.Sweep())

	// connected clients keep the seat
	c := NewClient(nil, 2)
	p.ClientConnected(c)
	clock.Advance(time.Hour)
	a.Equal(0, p.Sweep())

	p.ClientDisconnected(c)
	clock.Advance(time.Minute * 15)
	a.Equal(1, p.Sweep())
	a.Equal(0, p.Seats())
}

func TestPitBoss_Sweep_afterLookup(t *testing.T) {
	a := assert.New(t)

	clock := quartz.NewMock(t)
	p := newTestPitBoss("K,2,10,6", WithClock(clock), WithIdleTimeout(time.Minute*15))

	_, err := p.StartRound(1, nil)
	a.NoError(err)
	clock.Advance(time.Minute * 20)

	// a sweep right after the lookup must not take the seat away
	dealer := p.dealer(1, false)
	a.NotNil(dealer)
	a.Equal(0, p.Sweep())
	a.Equal(1, p.Seats())

	resp, err := dealer.State()
	a.NoError(err)
	a.Equal(blackjack.PhasePlayerTurn, participantState(t, resp).State.Phase)
	a.Same(dealer, p.dealer(1, false))
}

func TestPitBoss_CloseClients(t *testing.T) {
	a := assert.New(t)

	p := newTestPitBoss("K,2,10,6")
	a.Equal(0, p.CloseClients("bye"))

	c1 := NewClient(nil, 1)
	c2 := NewClient(nil, 2)
	p.ClientConnected(c1)
	p.ClientConnected(c2)

	a.Equal(2, p.CloseClients("bye"))
	a.Equal("bye", <-c1.CloseChan())

	// c2 has not read its reason yet
	a.Equal(1, p.CloseClients("again"))
	a.Equal("bye", <-c2.CloseChan())
	a.Equal("again", <-c1.CloseChan())
}

func TestClient_Disconnect(t *testing.T) {
	a := assert.New(t)

	c := NewClient(nil, 1)
	a.True(c.Disconnect("first"))
	a.False(c.Disconnect("second"))
	a.Equal("first", <-c.CloseChan())
}

func TestPitBoss_ClientDisconnected_logsCloseError(t *testing.T) {
	a := assert.New(t)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	p := NewPitBoss(logger, WithDeckFunc(forcedDeck("K,2,10,6")))

	c := NewClient(nil, 1)
	p.ClientConnected(c)
	c.CloseError = errors.New("connection reset")
	p.ClientDisconnected(c)

	entry := hook.LastEntry()
	a.Equal("client disconnected", entry.Message)
	a.Equal(c.CloseError, entry.Data[logrus.ErrorKey])
	a.Equal("player:1", entry.Data["player"])
}

func TestPitBoss_StartShift(t *testing.T) {
	a := assert.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	clock := quartz.NewMock(t)
	p := newTestPitBoss("K,2,10,6", WithClock(clock), WithIdleTimeout(time.Minute))
	_, err := p.StartRound(1, nil)
	a.NoError(err)

	shiftCtx, endShift := context.WithCancel(ctx)
	w := p.StartShift(shiftCtx, time.Minute)

	clock.Advance(time.Minute).MustWait(ctx)
	a.Equal(0, p.Seats())

	endShift()
	a.True(errors.Is(w.Wait(), context.Canceled))
}

func TestNewPitBoss_defaults(t *testing.T) {
	a := assert.New(t)

	p := NewPitBoss(logrus.StandardLogger())
	a.Equal(DefaultIdleTimeout, p.idleTimeout)
	a.Equal(blackjack.DefaultOptions(), p.options)
	a.Equal(deck.Size, p.shuffle().CardsLeft())

	p = NewPitBoss(logrus.StandardLogger(), WithGenerator(rng.NewSeeded(1)))
	d1 := p.shuffle()
	p = NewPitBoss(logrus.StandardLogger(), WithGenerator(rng.NewSeeded(1)))
	a.Equal(d1.HashCode(), p.shuffle().HashCode())
}
