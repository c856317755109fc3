package deck

import (
	"blackjack-server/internal/rng"
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
)

// ErrEmptyDeck is an error when Draw() is attempted and there are no more cards
var ErrEmptyDeck = errors.New("deck is empty")

// copiesPerRank is the number of each rank in a standard deck
const copiesPerRank = 4

// Size is the number of cards in a full deck
const Size = copiesPerRank * 13

// Deck represents a playing deck of rank tokens
// The top of the deck is index 0.
type Deck struct {
	cards []Rank
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	cards := make([]Rank, 0, Size)
	for i := 0; i < copiesPerRank; i++ {
		cards = append(cards, ranks...)
	}

	return &Deck{cards: cards}
}

// NewShuffled returns a full deck shuffled with the generator
func NewShuffled(gen rng.Generator) *Deck {
	d := New()
	d.Shuffle(gen)
	return d
}

// FromRanks returns a deck with the exact cards and order given, top first.
// Every rank is validated.
func FromRanks(cards ...Rank) (*Deck, error) {
	c := make([]Rank, len(cards))
	for i, card := range cards {
		if !card.Valid() {
			return nil, &UnknownRankError{Rank: string(card)}
		}

		c[i] = card
	}

	return &Deck{cards: c}, nil
}

// Shuffle permutes the remaining cards with a Fisher-Yates shuffle
func (d *Deck) Shuffle(gen rng.Generator) {
	for j := len(d.cards) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck order.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the top card
// If there are no more cards, ErrEmptyDeck is returned and the deck is unchanged.
func (d *Deck) Draw() (Rank, error) {
	if len(d.cards) == 0 {
		return "", ErrEmptyDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Ranks returns a copy of the remaining cards, top first
func (d *Deck) Ranks() []Rank {
	c := make([]Rank, len(d.cards))
	copy(c, d.cards)
	return c
}
