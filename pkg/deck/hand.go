package deck

// Hand represents the cards held by one party, in the order they were dealt
type Hand []Rank

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Rank) {
	*h = append(*h, card)
}

// Count returns how many cards of the rank are in the hand
func (h Hand) Count(rank Rank) int {
	n := 0
	for _, c := range h {
		if c == rank {
			n++
		}
	}

	return n
}

// FirstCard returns the first card in the hand or an empty rank if the hand is empty
func (h Hand) FirstCard() Rank {
	if len(h) == 0 {
		return ""
	}

	return h[0]
}

// LastCard returns the last card in the hand or an empty rank if the hand is empty
func (h Hand) LastCard() Rank {
	n := len(h)
	if n == 0 {
		return ""
	}

	return h[n-1]
}

func (h Hand) String() string {
	return RanksToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
