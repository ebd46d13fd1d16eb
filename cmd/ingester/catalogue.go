package main

import (
	"context"
	"fmt"

	"codeberg.org/talentmatch/server/internal/bootstrap"
	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/storage"
)

const ingestConcurrency = 4

// parses the catalogue CSV, embeds every item and stores it with its vector
func IngestCatalogue(ctx context.Context, cfg *config.Config, storageClient *storage.Client, flags config.Flags) error {
	logger.Info("starting catalogue ingestion", "path", flags.Path, "clear", flags.Clear)

	cat := catalogue.Load(ctx, catalogue.CSVSource{Path: flags.Path}, cfg.MinCatalogueSize)
	if cat.Source == catalogue.SourceSample {
		return fmt.Errorf("no usable catalogue rows in %s", flags.Path)
	}

	logger.Info("parsed catalogue", "items", cat.Len(), "degraded", cat.Degraded)

	emb, err := bootstrap.NewEmbedder(cfg)
	if err != nil {
		return err
	}

	// generate embeddings for all items
	logger.Info("generating embeddings", "model", emb.Model(), "batch_size", cfg.EmbedBatchSize)

	embeddings, err := embedder.EmbedAll(ctx, emb, cat.Texts(), cfg.EmbedBatchSize, ingestConcurrency)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if err := storageClient.EnsureSchema(ctx); err != nil {
		return err
	}

	if flags.Clear {
		logger.Info("clearing existing catalogue rows")

		if err := storageClient.ClearAll(ctx); err != nil {
			return fmt.Errorf("failed to clear existing items: %w", err)
		}
	}

	if err := storageClient.InsertItemsBatch(ctx, cat.Items, embeddings, emb.Model()); err != nil {
		return fmt.Errorf("failed to insert items: %w", err)
	}

	// verify insertion
	count, err := storageClient.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify item count: %w", err)
	}

	logger.Info("successfully ingested catalogue",
		"items_inserted", cat.Len(),
		"total_items", count,
	)

	return nil
}
