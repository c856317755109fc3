package config

import (
	"blackjack-server/internal/util"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// FileEnv names the environment variable holding the path to the config file
const FileEnv = "BLACKJACK_CONFIG_FILE"

// discordTokenFallbackEnv is read when no discord token is configured
const discordTokenFallbackEnv = "JACK_TOKEN"

// Config provides configuration for the blackjack server and hosts
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Discord struct {
		Token         string `yaml:"token" envconfig:"token"`
		ApplicationID string `yaml:"applicationId" envconfig:"application_id"`
		GuildID       string `yaml:"guildId" envconfig:"guild_id"`
	}
	Round struct {
		// IdleTimeout is in seconds
		IdleTimeout int `yaml:"idleTimeout" envconfig:"idle_timeout"`
		// SweepInterval is in seconds
		SweepInterval  int  `yaml:"sweepInterval" envconfig:"sweep_interval"`
		RevealHoleCard bool `yaml:"revealHoleCard" envconfig:"reveal_hole_card"`
	}
}

// IdleTimeout returns the round idle timeout as a duration
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.Round.IdleTimeout) * time.Second
}

// SweepInterval returns how often idle rounds are swept as a duration
func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.Round.SweepInterval) * time.Second
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	var c Config
	c.Log.Level = "info"
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"
	c.Round.IdleTimeout = 900
	c.Round.SweepInterval = 60

	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A .env file is loaded first if present. The config file is optional unless
// BLACKJACK_CONFIG_FILE is set explicitly. Environment variables win over the file.
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	c := DefaultConfig()

	_, explicit := os.LookupEnv(FileEnv)
	configFile := util.Getenv(FileEnv, "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&c); err != nil {
			return err
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return err
	}

	if err := envconfig.Process("blackjack", &c); err != nil {
		return err
	}

	if c.Discord.Token == "" {
		c.Discord.Token = os.Getenv(discordTokenFallbackEnv)
	}

	c.loaded = true
	config = c
	return nil
}
