package config

import (
	"blackjack-server/internal/util"
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv(FileEnv, "testdata/config.yaml")()
	defer util.SetEnv("BLACKJACK_JWT_PRIVATE_KEY", "private2.key")()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("debug", cfg.Log.Level)
	a.True(cfg.Log.DisableAccessLogs)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("1234", cfg.Discord.ApplicationID)
	a.Equal(time.Minute*5, cfg.IdleTimeout())
	a.Equal(time.Minute, cfg.SweepInterval())
	a.True(cfg.Round.RevealHoleCard)

	// ensure that it's only loaded once
	_ = os.Setenv("BLACKJACK_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	defer util.SetEnv(FileEnv, filepath.Join(t.TempDir(), "missing.yaml"))()
	assert.Error(t, Load())

	unset := util.SetEnv(FileEnv, "")
	defer unset()
	_ = os.Unsetenv(FileEnv)

	// the default file is optional
	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Round, cfg.Round)
	assert.Equal(t, 15*time.Minute, cfg.IdleTimeout())
}

func TestLoad_discordToken(t *testing.T) {
	a := assert.New(t)
	defer util.SetEnv(FileEnv, "testdata/config.yaml")()

	defer util.SetEnv("JACK_TOKEN", "jack")()
	a.NoError(Load())
	a.Equal("jack", Instance().Discord.Token)

	defer util.SetEnv("BLACKJACK_DISCORD_TOKEN", "blackjack")()
	a.NoError(Load())
	a.Equal("blackjack", Instance().Discord.Token)
}
