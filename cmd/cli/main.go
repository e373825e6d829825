package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storykeeper/internal/buildinfo"
	"github.com/dmitrijs2005/storykeeper/internal/client/cli"
	"github.com/dmitrijs2005/storykeeper/internal/client/config"
	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "cannot start", "error", err)
		os.Exit(1)
	}

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	// the REPL blocks on stdin, so a signal has to close the app from here
	select {
	case err = <-done:
	case <-ctx.Done():
		fmt.Println()
		err = app.Close()
	}
	if err != nil {
		log.Error(context.Background(), "exited with error", "error", err)
		os.Exit(1)
	}
}
