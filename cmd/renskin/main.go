// Package main runs the renskin face render service.
//
// It reads config from flags/env and serves until SIGINT or SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thiccmc/renskin"
	"github.com/thiccmc/renskin/internal/app"
	"github.com/thiccmc/renskin/internal/config"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	renskin.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg); err != nil {
		logger.Error("renskin stopped", "err", err)
		os.Exit(1)
	}
}
