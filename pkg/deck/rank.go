package deck

import (
	"fmt"
	"strings"
)

// Rank is the value-bearing face of a card. Suits are not modeled.
type Rank string

// rank constants
const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankValues = map[Rank]int{
	Two:   2,
	Three: 3,
	Four:  4,
	Five:  5,
	Six:   6,
	Seven: 7,
	Eight: 8,
	Nine:  9,
	Ten:   10,
	Jack:  10,
	Queen: 10,
	King:  10,
	Ace:   11,
}

// UnknownRankError is returned when a token is not one of the 13 ranks
type UnknownRankError struct {
	Rank string
}

func (u *UnknownRankError) Error() string {
	return fmt.Sprintf("unknown rank: %q", u.Rank)
}

// Ranks returns the 13 ranks in ascending order
func Ranks() []Rank {
	r := make([]Rank, len(ranks))
	copy(r, ranks)
	return r
}

// ParseRank validates a rank token
func ParseRank(s string) (Rank, error) {
	r := Rank(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rankValues[r]; !ok {
		return "", &UnknownRankError{Rank: s}
	}

	return r, nil
}

// Valid returns true if the rank is one of the 13 ranks
func (r Rank) Valid() bool {
	_, ok := rankValues[r]
	return ok
}

// Value returns the blackjack value of the rank, with an ace counted as 11.
// Ranks are validated when they enter a deck or hand, so an unknown rank here is a bug.
func (r Rank) Value() int {
	v, ok := rankValues[r]
	if !ok {
		panic(fmt.Sprintf("unknown rank: %q", string(r)))
	}

	return v
}

// IsAce returns true if the rank is an ace
func (r Rank) IsAce() bool {
	return r == Ace
}

func (r Rank) String() string {
	return string(r)
}

// RanksFromString returns a slice of ranks from a comma separated string (e.g., "10,K,A")
// It panics on an unknown rank and is intended for fixtures.
func RanksFromString(s string) []Rank {
	if s == "" {
		return []Rank{}
	}

	parts := strings.Split(s, ",")
	r := make([]Rank, len(parts))
	for i, part := range parts {
		rank, err := ParseRank(part)
		if err != nil {
			panic(fmt.Sprintf("could not parse rank: %v", err))
		}

		r[i] = rank
	}

	return r
}

// RanksToString converts a slice of ranks to a string in the format of 10,K,A
func RanksToString(r []Rank) string {
	s := make([]string, len(r))
	for i, rank := range r {
		s[i] = string(rank)
	}

	return strings.Join(s, ",")
}
