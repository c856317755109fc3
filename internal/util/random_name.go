package util

import (
	"blackjack-server/internal/rng"
	"fmt"
)

var adjectives = []string{
	"Lucky", "Steady", "Quick", "Bold", "Cautious", "Sly", "Grand", "Happy", "Patient", "Daring", "Quiet",
	"Red", "Blue", "Green", "Golden", "Silver", "Fuzzy", "Smiling", "Tall", "Wily", "Ultimate", "Prime",
	"Soft", "Hard", "Flying", "Jumping", "Charging", "Bouncing", "Leaping",
}

var animals = []string{
	"Dog", "Cat", "Otter", "Shark", "Hippo", "Giraffe", "Lion", "Tiger", "Bear", "Dolphin", "Hedgehog",
	"Lizard", "Eagle", "Wolf", "Fox", "Armadillo", "Rhino", "Panda", "Owl", "Raven", "Badger", "Heron",
}

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName(gen rng.Generator) string {
	adjectivesIndex := gen.Intn(len(adjectives))
	animalsIndex := gen.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
