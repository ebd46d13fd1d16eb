package evaluation

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/talentmatch/server/internal/logger"
	"golang.org/x/sync/errgroup"
)

// NormalizeURL reduces an assessment url to a comparable key: the slug after
// "/view/" when present, otherwise the whole url, lower-cased without
// trailing slashes. Both catalogue url layouts map to the same key.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}

	if _, slug, ok := strings.Cut(url, viewMarker); ok {
		return strings.ToLower(strings.TrimRight(slug, "/"))
	}

	return strings.ToLower(url)
}

// RecallAtK is the share of relevant urls found in the first k recommended,
// compared by NormalizeURL; 0 when nothing is relevant
func RecallAtK(recommended, relevant []string, k int) float64 {
	hits, total := countHits(recommended, relevant, k)
	if total == 0 {
		return 0
	}

	return float64(hits) / float64(total)
}

func countHits(recommended, relevant []string, k int) (hits, total int) {
	want := make(map[string]bool, len(relevant))
	for _, u := range relevant {
		if key := NormalizeURL(u); key != "" {
			want[key] = true
		}
	}

	if k < 0 {
		k = 0
	}

	for _, u := range recommended[:min(k, len(recommended))] {
		if key := NormalizeURL(u); key != "" && want[key] {
			hits++
		}
	}

	return hits, len(want)
}

// Evaluate runs every labeled query through recommend and aggregates
// Recall@k; queries whose recommendation fails are counted and skipped
func Evaluate(ctx context.Context, recommend RecommendFunc, labels []LabeledQuery, k int) (*Report, error) {
	report := &Report{K: k}

	for _, lq := range labels {
		if len(lq.Relevant) == 0 {
			logger.Warn("no ground truth for query", "query", truncate(lq.Query))
			continue
		}

		urls, err := recommend(ctx, lq.Query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			logger.Warn("recommendation failed", "query", truncate(lq.Query), "error", err)
			report.Failed++

			continue
		}

		hits, total := countHits(urls, lq.Relevant, k)

		result := QueryResult{
			Query:            lq.Query,
			RelevantCount:    len(lq.Relevant),
			RecommendedCount: len(urls),
			RelevantInTopK:   hits,
		}

		if total > 0 {
			result.Recall = float64(hits) / float64(total)
		}

		report.Queries = append(report.Queries, result)
	}

	if len(report.Queries) == 0 {
		return nil, fmt.Errorf("no valid queries found in label data")
	}

	report.Min, report.Max = report.Queries[0].Recall, report.Queries[0].Recall

	var sum float64
	for _, q := range report.Queries {
		sum += q.Recall
		report.Min = min(report.Min, q.Recall)
		report.Max = max(report.Max, q.Recall)
	}

	report.Mean = sum / float64(len(report.Queries))

	return report, nil
}

// Predict recommends for every query with up to concurrency in flight.
// Output keeps query order; a failing query is logged and contributes no rows.
func Predict(ctx context.Context, recommend RecommendFunc, queries []string, concurrency int) ([]Prediction, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	perQuery := make([][]string, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, query := range queries {
		g.Go(func() error {
			urls, err := recommend(gctx, query)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}

				logger.Error("failed to process query", "index", i+1, "query", truncate(query), "error", err)

				return nil
			}

			perQuery[i] = urls

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Prediction
	for i, urls := range perQuery {
		for _, u := range urls {
			out = append(out, Prediction{Query: queries[i], AssessmentURL: u})
		}
	}

	return out, nil
}

func truncate(s string) string {
	const limit = 50

	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}

	return s
}
