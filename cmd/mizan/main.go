package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mizanapp/mizan/adapter/cli"
	"github.com/mizanapp/mizan/internal/app"
	"github.com/mizanapp/mizan/pkg/config"
	"github.com/mizanapp/mizan/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() { _ = container.Close() }()

	cli.SetApp(&cli.App{
		Dispatcher: container.Dispatcher,
		Anchors:    container.Anchors,
	})

	cli.Execute()
}
