package main

import (
	"blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"
)

type CLI struct {
	Token TokenCmd `cmd:"" help:"Issue an API token for a player"`
}

type TokenCmd struct {
	Player int64         `required:"" help:"The player ID the token identifies"`
	TTL    time.Duration `default:"720h" help:"How long the token is valid"`
}

func (t *TokenCmd) Run() error {
	// keep piped output to just the token
	return t.issue(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
}

func (t *TokenCmd) issue(w io.Writer, verbose bool) error {
	if t.Player <= 0 {
		return errors.New("player must be a positive ID")
	}

	if err := config.Load(); err != nil {
		return err
	}

	cfg := config.Instance()
	signer, err := jwt.LoadSigner(cfg.JWT.PublicKey, cfg.JWT.PrivateKey)
	if err != nil {
		return err
	}

	signer.TTL = t.TTL
	token, err := signer.Sign(t.Player)
	if err != nil {
		return err
	}

	if verbose {
		_, _ = fmt.Fprintf(w, "Token for player %d, valid for %s:\n", t.Player, t.TTL)
	}

	_, err = fmt.Fprintln(w, token)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack-admin"),
		kong.Description("Administrative tasks for the blackjack server"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
