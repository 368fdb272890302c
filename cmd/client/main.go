package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/educloud/internal/client/cli"
	"github.com/dmitrijs2005/educloud/internal/client/config"
	"github.com/dmitrijs2005/educloud/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), false)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "cannot start client", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
