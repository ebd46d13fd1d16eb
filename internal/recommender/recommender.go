package recommender

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"codeberg.org/talentmatch/server/internal/categories"
	"codeberg.org/talentmatch/server/internal/extractor"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/retriever"
	"codeberg.org/talentmatch/server/internal/selector"
)

// Recommend runs one request against res: resolve the query text, score
// every item, filter, then select a category-balanced top-k. The result
// is sorted by descending score with ties broken by catalogue position.
// An empty filter result falls back to pure relevance over the whole index.
func Recommend(ctx context.Context, res *Resources, req Request, opts Options) (*Result, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	if res == nil || res.Index == nil || res.Embedder == nil {
		return nil, ErrNotReady
	}

	if res.Index.Len() == 0 {
		return nil, ErrEmptyCatalogue
	}

	topK := req.TopK
	if topK <= 0 {
		topK = cmp.Or(opts.DefaultTopK, defaultTopK)
	}

	log := logger.FromContext(ctx)

	queryText := res.expandQuery(ctx, query)

	vector, usedText, err := res.embedQuery(ctx, queryText, query, opts.EmbedTimeout)
	if err != nil {
		return nil, err
	}

	scores, err := res.Index.Scores(vector)
	if err != nil {
		return nil, fmt.Errorf("failed to score catalogue: %w", err)
	}

	result := &Result{QueryText: usedText}
	ranked := retriever.Rank(scores, res.Index.All())
	result.ranked = retriever.WithScores(scores, ranked)

	candidates := ranked

	filter := retriever.Filter{MaxDuration: req.MaxDuration, PreferredType: req.PreferredType}
	if filter.Active() {
		candidates = filter.Apply(res.Index, ranked)
		result.Trace = append(result.Trace, StateFiltered)

		if len(candidates) == 0 {
			log.Info("filters removed every item, falling back to relevance",
				"max_duration", req.MaxDuration,
				"preferred_type", req.PreferredType,
			)

			result.Trace = append(result.Trace, StateFilterFallback, StateBypassedToRelevance)
			result.Recommendations = res.recommendations(scores, ranked[:min(topK, len(ranked))])

			return result, nil
		}
	}

	result.Needed = categories.Needed(usedText, req.PreferredType)

	selected, bypassed := selector.Select(candidates, res.Index.CategoriesOf, result.Needed, topK)
	if bypassed {
		result.Trace = append(result.Trace, StateBypassedToRelevance)
	} else {
		result.Trace = append(result.Trace, StateBucketed, StateRoundRobinSelected)
	}

	result.Recommendations = res.recommendations(scores, selected)

	log.Debug("recommendation selected",
		"candidates", len(candidates),
		"needed", result.Needed,
		"selected", len(result.Recommendations),
		"bypassed", bypassed,
	)

	return result, nil
}

// replaces a URL query with the page text; any failure keeps the raw query
func (r *Resources) expandQuery(ctx context.Context, query string) string {
	if r.Extractor == nil || !extractor.IsLikelyURL(query) {
		return query
	}

	text := r.Extractor.Extract(ctx, query)
	if text == "" {
		logger.FromContext(ctx).Warn("url extraction returned nothing, using raw query", "url", query)
		return query
	}

	return text
}

// embeds text within timeout; when text came from a URL and embedding it
// fails, the raw query is tried once before giving up
func (r *Resources) embedQuery(ctx context.Context, text, raw string, timeout time.Duration) ([]float32, string, error) {
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}

	embed := func(s string) ([]float32, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return r.Embedder.GenerateEmbedding(ctx, s)
	}

	vector, err := embed(text)
	if err == nil {
		return vector, text, nil
	}

	if text == raw {
		return nil, "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	logger.FromContext(ctx).Warn("failed to embed extracted text, using raw query", "error", err)

	vector, err = embed(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	return vector, raw, nil
}

func (r *Resources) recommendations(scores []float32, positions []int) []Recommendation {
	out := make([]Recommendation, len(positions))
	for i, pos := range positions {
		out[i] = Recommendation{Item: r.Index.Item(pos), Score: scores[pos], Position: pos}
	}

	sortByRelevance(out)

	return out
}

// descending score, ascending catalogue position
func sortByRelevance(recs []Recommendation) {
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Position, b.Position)
	})
}
