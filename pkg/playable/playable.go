package playable

import (
	"blackjack-server/pkg/deck"
	"fmt"
	"github.com/google/uuid"
	"time"
)

// Playable is the contract between a game and the host seating its players
type Playable interface {
	// Action applies a message from the player
	// playerResponse, when set, is sent straight back to the client. When
	// updateState is true the host pushes a fresh state to the player.
	Action(playerID int64, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns what the player is allowed to see of the game
	GetPlayerState(playerID int64) (*Response, error)

	// GetEndOfGameDetails returns the results once the game is over, or false
	// while it is still being played
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name is the display name of the game
	Name() string

	// Key identifies the game in responses
	Key() string

	// LogChan is where the game publishes its progress messages
	LogChan() <-chan []*LogMessage
}

// LogMessage is a progress message from a game
// Hosts replace {} in Message with the name of the player in PlayerIDs.
// Cards holds any ranks the message refers to.
type LogMessage struct {
	UUID      string      `json:"uuid"`
	PlayerIDs []int64     `json:"playerIds"`
	Cards     []deck.Rank `json:"cards"`
	Message   string      `json:"message"`
	Time      time.Time   `json:"time"`
}

// Response is any message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is a message received from a client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails describes how a game ended
type GameOverDetails struct {
	// Results maps each player to their outcome
	Results map[int64]string
	Log     interface{}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// NewLogMessage returns a new LogMessage with the cards attached
func NewLogMessage(playerID int64, cards []deck.Rank, format string, a ...interface{}) *LogMessage {
	lm := SimpleLogMessage(playerID, format, a...)
	if len(cards) > 0 {
		lm.Cards = cards
	}

	return lm
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// SimpleLogMessageSlice returns a single log message
func SimpleLogMessageSlice(playerID int64, format string, a ...interface{}) []*LogMessage {
	return []*LogMessage{SimpleLogMessage(playerID, format, a...)}
}
