package main

import (
	"context"
	"log"

	"github.com/philly/quillpost/internal/server"
)

func main() {
	ctx := context.Background()

	app, cleanup, err := server.InitializeWebApp()
	if err != nil {
		log.Fatalf("Failed to initialize web app: %v", err)
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		log.Printf("Failed to run web app: %v", err)
	}
}
