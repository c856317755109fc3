package main

import (
	"blackjack-server/internal/console"
	"blackjack-server/internal/rng"
	"blackjack-server/internal/util"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/playable/blackjack"
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type PlayCmd struct {
	Auto   int    `short:"a" help:"Stand on this value instead of prompting for decisions"`
	Rounds int    `short:"n" default:"1" help:"Number of rounds to play (0 plays until input ends)"`
	Seed   int64  `short:"s" help:"Seed the shuffle for repeatable rounds"`
	Name   string `help:"Your name at the table (random when empty)"`
	Debug  bool   `help:"Log round transitions to stderr"`
}

func (p *PlayCmd) Validate() error {
	if p.Rounds < 0 {
		return errors.New("rounds must be 0 or more")
	}

	if p.Auto < 0 || p.Auto > 21 {
		return errors.New("auto must be between 1 and 21")
	}

	if p.Auto > 0 && p.Rounds == 0 {
		return errors.New("auto play needs a number of rounds")
	}

	return nil
}

func (p *PlayCmd) Run() error {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if p.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	var gen rng.Generator = rng.Crypto{}
	if p.Seed != 0 {
		gen = rng.NewSeeded(p.Seed)
	}

	name := p.Name
	if name == "" {
		name = util.GetRandomName(gen)
	}

	c := console.New(os.Stdin, os.Stdout, name)
	c.Title("♠ Blackjack ♥")
	defer c.Summary()

	var source blackjack.DecisionSource = c
	if p.Auto > 0 {
		source = blackjack.StandOn(p.Auto)
	}

	ctx := context.Background()
	for i := 0; p.Rounds == 0 || i < p.Rounds; i++ {
		r := blackjack.NewRound(logger, deck.NewShuffled(gen), blackjack.WithSink(c))
		outcome, err := blackjack.PlayRound(ctx, r, source)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		c.Record(outcome)
	}

	return nil
}
