package blackjack

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decision is a choice the player makes during their turn
type Decision int

// Decision constants
// The numeric values match the "1 - stay, 2 - hit" prompt.
const (
	DecisionStay Decision = iota + 1
	DecisionHit
)

// MarshalJSON encodes the JSON
func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(d),
		Name: d.String(),
	})
}

// Valid returns true if the decision is stay or hit
func (d Decision) Valid() bool {
	return d == DecisionStay || d == DecisionHit
}

func (d Decision) String() string {
	switch d {
	case DecisionStay:
		return "Stay"
	case DecisionHit:
		return "Hit"
	}

	panic(fmt.Sprintf("invalid decision: %d", d))
}

// DecisionFromString parses a decision
// Accepts the prompt codes (1, 2) and the names, case-insensitive.
func DecisionFromString(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "stay", "stand", "s":
		return DecisionStay, nil
	case "2", "hit", "h":
		return DecisionHit, nil
	}

	return 0, &InvalidDecisionError{Value: s}
}
