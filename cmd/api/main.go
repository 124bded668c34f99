package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"estatehub/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (storage + event bus + contexts).
// 3) Serve HTTP until SIGINT/SIGTERM, then drain.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		log.Fatalf("bootstrap api failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("api shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Printf("estatehub api stopped with error: %v", err)
	}
}
