package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/a04k/discordkit/bot"
	"github.com/a04k/discordkit/config"
	"github.com/a04k/discordkit/domains"
	"github.com/a04k/discordkit/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Open(os.Stdout, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log = logger.Open(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	b, err := bot.New(ctx, cfg, domains.Names, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	if err := b.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bot stopped with an error")
	}
}
