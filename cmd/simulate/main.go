package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fadedpez/shoesim/internal/config"
	"github.com/fadedpez/shoesim/internal/logging"
)

type CLI struct {
	Verbose bool `short:"v" help:"Debug logging, including every round"`

	Run        RunCmd        `cmd:"" default:"withargs" help:"Simulate runs and print a strategy comparison"`
	Compare    CompareCmd    `cmd:"" help:"Compare strategies across stored runs"`
	Reindex    ReindexCmd    `cmd:"" help:"Copy stored runs into Elasticsearch"`
	Strategies StrategiesCmd `cmd:"" help:"List the available strategies"`
}

// Globals is what every command gets bound to
type Globals struct {
	Ctx    context.Context
	Config *config.Config
	Logger *logging.Logger
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Blackjack strategy simulator"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	kctx.FatalIfErrorf(err)

	level, err := logging.ParseLevel(cfg.LogLevel)
	kctx.FatalIfErrorf(err)
	if cli.Verbose {
		level = logging.DEBUG
	}
	logger := logging.NewLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&Globals{Ctx: ctx, Config: cfg, Logger: logger})
	if err != nil {
		logger.LogError(err)
		os.Exit(1)
	}
}
