package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  catalogue - embed a catalogue CSV and store it in Postgres")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - catalogue CSV to ingest")
		fmt.Println("  --clear        - Clear existing data before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	// connect to database
	ctx := context.Background()

	storageClient, err := storage.NewClient(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	defer storageClient.Close()

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "catalogue":
		flags := config.ParseCatalogueFlags(os.Args[2:])
		if err := IngestCatalogue(ctx, cfg, storageClient, flags); err != nil {
			logger.Fatal("failed to ingest catalogue", "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
