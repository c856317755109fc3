package room

import (
	"blackjack-server/pkg/playable"
	"fmt"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// close carries the reason the server wants the connection closed
	close chan string

	// CloseError is the read error that ended the connection, if any
	CloseError error

	dealer   *Dealer
	playerID int64
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID int64) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		close:    make(chan string, 1),
		Conn:     conn,
		playerID: playerID,
	}
}

// Send send a message to the web client
// Returns false if the send buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Disconnect asks the connection to close with the reason
// Returns false if a close was already requested
func (c *Client) Disconnect(reason string) bool {
	select {
	case c.close <- reason:
		return true
	default:
		return false
	}
}

// CloseChan receives the reason once Disconnect is called
func (c *Client) CloseChan() <-chan string {
	return c.close
}

// PlayerID returns the player the client belongs to
func (c *Client) PlayerID() int64 {
	return c.playerID
}

// String returns a traceable identifier for the player
func (c *Client) String() string {
	return fmt.Sprintf("player:%d", c.playerID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
