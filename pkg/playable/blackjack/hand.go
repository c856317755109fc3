package blackjack

import (
	"blackjack-server/pkg/deck"
	"fmt"
	"strings"
)

const (
	// blackjack is the best possible total
	blackjack = 21

	// aceDemotion is the difference between counting an ace as 11 and as 1
	aceDemotion = 10

	// dealerStandsOn is the total the dealer stops drawing at, soft or hard
	dealerStandsOn = 17
)

// evaluate returns the best total and the number of aces still counted as 11
func evaluate(hand deck.Hand) (total int, softAces int) {
	for _, card := range hand {
		total += card.Value()
		if card.IsAce() {
			softAces++
		}
	}

	for total > blackjack && softAces > 0 {
		total -= aceDemotion
		softAces--
	}

	return total, softAces
}

// ValueOf returns the best total for the hand
// Aces count as 11 and are demoted to 1, one at a time, while the total is over 21.
func ValueOf(hand deck.Hand) int {
	total, _ := evaluate(hand)
	return total
}

// IsSoft returns true if at least one ace is still counted as 11
func IsSoft(hand deck.Hand) bool {
	_, softAces := evaluate(hand)
	return softAces > 0
}

// IsBust returns true if the hand is over 21
func IsBust(hand deck.Hand) bool {
	return ValueOf(hand) > blackjack
}

// IsNaturalBlackjack returns true if the hand is exactly two cards worth 21
func IsNaturalBlackjack(hand deck.Hand) bool {
	return len(hand) == 2 && ValueOf(hand) == blackjack
}

// FormatHand renders a hand with its value, e.g., "10, 6 (16)"
func FormatHand(hand deck.Hand) string {
	cards := make([]string, len(hand))
	for i, card := range hand {
		cards[i] = card.String()
	}

	return fmt.Sprintf("%s (%d)", strings.Join(cards, ", "), ValueOf(hand))
}
