package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/futig/trip-planner-backend/internal/builder"
)

func main() {
	indexer, err := builder.BuildIndexer()
	if err != nil {
		log.Fatal("Failed to build indexer:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := indexer.Run(ctx); err != nil {
		log.Fatal("Index build failed:", err)
	}
}
