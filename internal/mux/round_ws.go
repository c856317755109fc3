package mux

import (
	"blackjack-server/pkg/playable"
	"blackjack-server/pkg/room"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"net/http"
	"time"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// closeFrameWait is how long the writer waits for the peer to answer a close frame
const closeFrameWait = time.Second

// roundSocket pumps messages between one websocket and the player's seat
type roundSocket struct {
	client *room.Client
	logger logrus.FieldLogger

	// done is closed once the read side has finished
	done chan struct{}
}

func (m *Mux) getRoundWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		client := room.NewClient(conn, playerID(r))
		s := &roundSocket{
			client: client,
			logger: logrus.WithField("client", client.String()),
			done:   make(chan struct{}),
		}

		m.pitBoss.ClientConnected(client)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			_ = conn.Close()
			close(s.done)
		}()

		go s.writeLoop()
		s.readLoop()
	}
}

func (s *roundSocket) readLoop() {
	conn := s.client.Conn
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg playable.PayloadIn
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.WithError(err).Error("could not read message")
			}

			s.client.CloseError = err
			return
		}

		s.logger.WithField("action", msg.Action).Debug("received message")
		s.client.ReceivedMessage(&msg)
	}
}

func (s *roundSocket) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-s.client.CloseChan():
			_ = s.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			select {
			case <-s.done:
			case <-time.After(closeFrameWait):
			}
			return
		case <-s.done:
			return
		case msg, ok := <-s.client.SendChan():
			if !ok {
				return
			}

			if err := s.writeJSON(msg); err != nil {
				s.logger.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

func (s *roundSocket) write(messageType int, data []byte) error {
	_ = s.client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.client.Conn.WriteMessage(messageType, data)
}

func (s *roundSocket) writeJSON(msg interface{}) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.logger.WithField("message", string(b)).Trace("sending message to client")
	return s.write(websocket.TextMessage, b)
}
