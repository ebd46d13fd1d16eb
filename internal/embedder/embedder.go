package embedder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// creates an embedder for the configured provider
func New(config Config) (Embedder, error) {
	switch config.Provider {
	case ProviderOpenAI:
		if config.APIKey == "" {
			return nil, fmt.Errorf("openai embedder requires an API key")
		}

		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey:            config.APIKey,
			Model:             config.Model,
			BaseURL:           config.BaseURL,
			Dimensions:        config.Dimensions,
			RequestsPerSecond: config.RequestsPerSecond,
			Burst:             config.Burst,
		}), nil
	case ProviderHashing:
		return NewHashingEmbedder(config.Dimensions)
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.Provider)
	}
}

// embeds texts in batches, running up to concurrency batches at once;
// row i of the result is always the embedding of texts[i]
func EmbedAll(ctx context.Context, e Embedder, texts []string, batchSize, concurrency int) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if batchSize <= 0 {
		batchSize = len(texts)
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	out := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))

		g.Go(func() error {
			vectors, err := e.GenerateEmbeddings(gctx, texts[start:end])
			if err != nil {
				return fmt.Errorf("failed to embed batch %d-%d: %w", start, end, err)
			}

			if len(vectors) != end-start {
				return fmt.Errorf("batch %d-%d returned %d embeddings", start, end, len(vectors))
			}

			// each goroutine owns a disjoint slot range
			copy(out[start:end], vectors)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
