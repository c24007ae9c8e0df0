// Command client is an interactive terminal client for the exercise tracker API.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/exercisetracker/internal/client/cli"
	"github.com/dmitrijs2005/exercisetracker/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	app.Run(context.Background())
}
