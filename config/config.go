package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrMissingToken is returned by Validate when no bot token is configured.
var ErrMissingToken = errors.New("BOT_TOKEN must be set in .env or the environment")

// Config holds everything the bot and the deploy entry point read from the environment.
type Config struct {
	BotToken          string `env:"BOT_TOKEN"`
	ClientID          string `env:"CLIENT_ID"`
	GuildID           string `env:"GUILD_ID"`
	UseGlobalCommands bool   `env:"GLOBAL_COMMANDS" envDefault:"false"`
	DeployOnReady     bool   `env:"DEPLOY_ON_READY" envDefault:"true"`
	WebhookPort       int    `env:"WEBHOOK_PORT" envDefault:"5001"`

	// Storage add-ons, only opened when set.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`
	MongoURI    string `env:"MONGO_URI"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"` // console, json, or empty to detect a terminal
	Version   string `env:"BOT_VERSION" envDefault:"0.0.1"`
}

// Load reads the given dotenv files (".env" when none are given) into the
// process environment and parses the result. A missing dotenv file is not an error.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingToken
	}
	return nil
}
