package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/rps-camera/config"
	"github.com/GoSim-25-26J-441/rps-camera/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Run(ctx, cfg, nil); err != nil {
		log.Fatalf("server: %v", err)
	}
}
