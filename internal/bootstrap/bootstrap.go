package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/extractor"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/recommender"
	"codeberg.org/talentmatch/server/internal/storage"
)

// creates the embedder selected by configuration
func NewEmbedder(cfg *config.Config) (embedder.Embedder, error) {
	emb, err := embedder.New(embedder.Config{
		Provider:   embedder.Provider(cfg.EmbedderProvider),
		APIKey:     cfg.EmbedderAPIKey,
		Model:      cfg.EmbedderModel,
		BaseURL:    cfg.EmbedderBaseURL,
		Dimensions: cfg.EmbedderDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return emb, nil
}

// creates the URL extractor used for query expansion
func NewExtractor(cfg *config.Config) *extractor.HTTPExtractor {
	return extractor.NewHTTPExtractor(&http.Client{}, cfg.URLExtractionTimeout)
}

// maps configuration onto recommender options
func Options(cfg *config.Config) recommender.Options {
	return recommender.Options{
		MinResults:   cfg.MinResults,
		MaxResults:   cfg.MaxResults,
		DefaultTopK:  cfg.DefaultTopK,
		EmbedTimeout: cfg.EmbedTimeout,
	}
}

// LoadResources reads the configured catalogue source and builds serving
// resources. A Postgres catalogue whose stored embeddings match the
// embedder's model is indexed as-is; anything else is embedded here.
func LoadResources(ctx context.Context, cfg *config.Config, emb embedder.Embedder, ext extractor.Extractor) (*recommender.Resources, error) {
	var src catalogue.Source

	switch cfg.CatalogueSource {
	case config.SourcePostgres:
		client, err := storage.NewClient(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("catalogue database unavailable, using sample catalogue", "error", err)
			return build(ctx, cfg, catalogue.Sample(), emb, ext)
		}

		defer client.Close()

		embedded, err := client.LoadEmbedded(ctx, emb.Model())
		if err == nil && embedded.Vectors != nil && len(embedded.Items) > 0 {
			res, err := recommender.FromEmbedded(embedded.Items, embedded.Vectors, emb, ext, client.Name(), cfg.MinCatalogueSize)
			if err == nil {
				logger.Info("catalogue loaded with stored embeddings",
					"items", res.Index.Len(),
					"model", embedded.Model,
				)

				return res, nil
			}

			logger.Warn("stored embeddings unusable, re-embedding catalogue", "error", err)
		}

		src = client
	default:
		src = catalogue.CSVSource{Path: cfg.CataloguePath}
	}

	return build(ctx, cfg, catalogue.Load(ctx, src, cfg.MinCatalogueSize), emb, ext)
}

func build(ctx context.Context, cfg *config.Config, cat *catalogue.Catalogue, emb embedder.Embedder, ext extractor.Extractor) (*recommender.Resources, error) {
	return recommender.Build(ctx, cat, emb, ext, recommender.BuildOptions{
		BatchSize:   cfg.EmbedBatchSize,
		Concurrency: embedConcurrency,
	})
}

const embedConcurrency = 4
