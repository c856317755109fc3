package main

import (
	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/internal/mux"
	"blackjack-server/pkg/playable/blackjack"
	"blackjack-server/pkg/room"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Addr    string           `short:"a" default:":5000" help:"The listen address"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-server"),
		kong.Description("HTTP and websocket server for blackjack rounds"),
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

	// fail fast, the server only validates tokens
	signer, err := jwt.LoadSigner(cfg.JWT.PublicKey, "")
	if err != nil {
		return err
	}

	options := blackjack.DefaultOptions()
	options.RevealHoleCard = cfg.Round.RevealHoleCard

	pitBoss := room.NewPitBoss(logrus.StandardLogger(),
		room.WithIdleTimeout(cfg.IdleTimeout()),
		room.WithOptions(options),
	)

	corsHandler := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         c.Addr,
		Handler:      loggingHandler(corsHandler.Handler(mux.NewMux(Version, pitBoss, signer))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		if err := pitBoss.StartShift(ctx, cfg.SweepInterval()).Wait(); !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down")

		// Shutdown does not wait on hijacked websocket connections
		pitBoss.CloseClients("server is shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
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
