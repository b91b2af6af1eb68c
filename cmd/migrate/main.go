// Command main applies the database schema for Unburden.
//
// The server migrates automatically outside production; production deploys
// run this once before starting the server.
package main

import (
	"context"
	"log"

	"unburden/internal/config"
	"unburden/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Schema applied")
}
