package main

import (
	"blackjack-server/internal/config"
	"blackjack-server/internal/discord"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Version is the bot version
var Version = "v0.0.0-dev"

// ErrMissingToken is returned when no bot token is configured
var ErrMissingToken = errors.New("missing discord token: set BLACKJACK_DISCORD_TOKEN or JACK_TOKEN")

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Register bool             `default:"true" negatable:"" help:"Register the slash commands on startup"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-discord"),
		kong.Description("Discord bot that deals blackjack rounds"),
		kong.UsageOnError(),
		kong.Vars{
			"version": Version,
		},
	)

	ctx.FatalIfErrorf(cli.Run())
}

func (c *CLI) Run() error {
	if err := config.Load(); err != nil {
		return err
	}

	setupLogger()
	cfg := config.Instance()

	if cfg.Discord.Token == "" {
		return ErrMissingToken
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}

	options := blackjack.DefaultOptions()
	options.RevealHoleCard = cfg.Round.RevealHoleCard

	pitBoss := room.NewPitBoss(logrus.StandardLogger(),
		room.WithIdleTimeout(cfg.IdleTimeout()),
		room.WithOptions(options),
	)

	bot := discord.NewBot(logrus.StandardLogger(), pitBoss)
	session.AddHandler(bot.HandleInteraction)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logrus.WithField("user", r.User.Username).Info("connected to discord")
	})

	if err := session.Open(); err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logrus.WithError(err).Error("could not close session")
		}
	}()

	if c.Register {
		applicationID := cfg.Discord.ApplicationID
		if applicationID == "" {
			me, err := session.User("@me")
			if err != nil {
				return err
			}

			applicationID = me.ID
		}

		if err := discord.Register(session, applicationID, cfg.Discord.GuildID); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := pitBoss.StartShift(ctx, cfg.SweepInterval())
	if err := w.Wait(); !errors.Is(err, context.Canceled) {
		return err
	}

	logrus.Info("shutting down")
	return nil
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
