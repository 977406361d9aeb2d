package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskboard/app/config"
	"taskboard/app/logging"
	"taskboard/app/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg, logger); err != nil {
		log.Fatal(err)
	}
}
