// Command server runs the exercise tracker HTTP API.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/exercisetracker/internal/server"
	"github.com/dmitrijs2005/exercisetracker/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("exercisetracker: %v", err)
	}

	app.Run(ctx)
}
