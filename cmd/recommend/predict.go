package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/evaluation"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/recommender"
)

// recommends for every query in a CSV and writes Query,Assessment_url rows
func RunPredict(ctx context.Context, svc *recommender.Service, flags config.PredictFlags) error {
	in, err := os.Open(flags.Queries)
	if err != nil {
		return fmt.Errorf("failed to open queries: %w", err)
	}

	defer in.Close()

	queries, err := evaluation.ReadQueries(in)
	if err != nil {
		return err
	}

	logger.Info("loaded queries", "path", flags.Queries, "count", len(queries))

	predictions, err := evaluation.Predict(ctx, recommendURLs(svc, flags.TopK), queries, flags.Concurrency)
	if err != nil {
		return err
	}

	out, err := os.Create(flags.Out)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if err := evaluation.WritePredictions(out, predictions); err != nil {
		out.Close() //nolint:errcheck,gosec // error path cleanup
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	logger.Info("predictions saved", "path", flags.Out, "rows", len(predictions), "queries", len(queries))

	return nil
}

// adapts the service to the url-only shape evaluation works with
func recommendURLs(svc *recommender.Service, topK int) evaluation.RecommendFunc {
	return func(ctx context.Context, query string) ([]string, error) {
		result, err := svc.Recommend(ctx, recommender.Request{Query: query, TopK: topK})
		if err != nil {
			return nil, err
		}

		urls := make([]string, len(result.Recommendations))
		for i, rec := range result.Recommendations {
			urls[i] = rec.Item.URL
		}

		return urls, nil
	}
}
