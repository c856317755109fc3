package blackjack

import "blackjack-server/pkg/playable"

// Options contains options for a game of blackjack
type Options struct {
	// RevealHoleCard shows the dealer's second card from the deal
	RevealHoleCard bool `json:"revealHoleCard"`
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		RevealHoleCard: false,
	}
}

// OptionsFromData overlays a client payload on base
// Missing keys keep the value from base.
func OptionsFromData(base Options, data playable.AdditionalData) Options {
	opts := base
	if reveal, ok := data.GetBool("revealHoleCard"); ok {
		opts.RevealHoleCard = reveal
	}

	return opts
}
