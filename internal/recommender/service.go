package recommender

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/extractor"
	"codeberg.org/talentmatch/server/internal/logger"
	"codeberg.org/talentmatch/server/internal/retriever"
)

// Holder publishes the current Resources. Readers take a snapshot with
// Load and keep it for the whole request; a refresh swaps in a new value.
type Holder struct {
	current atomic.Pointer[Resources]
}

func NewHolder() *Holder {
	return &Holder{}
}

// returns the current resources, nil until the first Swap
func (h *Holder) Load() *Resources {
	return h.current.Load()
}

// publishes res and returns the previous value
func (h *Holder) Swap(res *Resources) *Resources {
	return h.current.Swap(res)
}

// reports whether resources have been published
func (h *Holder) Ready() bool {
	return h.current.Load() != nil
}

// Service is the request boundary: validation, readiness and the result
// count contract on top of Recommend.
type Service struct {
	holder *Holder
	opts   Options
}

func NewService(holder *Holder, opts Options) *Service {
	opts.MinResults = cmp.Or(opts.MinResults, defaultMinResults)
	opts.MaxResults = max(cmp.Or(opts.MaxResults, defaultMaxResults), opts.MinResults)
	opts.DefaultTopK = cmp.Or(opts.DefaultTopK, defaultTopK)
	opts.EmbedTimeout = cmp.Or(opts.EmbedTimeout, defaultEmbedTimeout)

	return &Service{holder: holder, opts: opts}
}

func (s *Service) Ready() bool {
	return s.holder.Ready()
}

func (s *Service) Options() Options {
	return s.opts
}

// returns the current resources snapshot, nil while initializing
func (s *Service) Resources() *Resources {
	return s.holder.Load()
}

// runs req and reconciles the selection to between MinResults and
// MaxResults items (fewer only when the catalogue itself is smaller)
func (s *Service) Recommend(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrInvalidQuery
	}

	res := s.holder.Load()
	if res == nil {
		return nil, ErrNotReady
	}

	if req.TopK <= 0 {
		req.TopK = s.opts.DefaultTopK
	}

	result, err := Recommend(ctx, res, req, s.opts)
	if err != nil {
		return nil, err
	}

	global := res.topByRelevance(result, s.opts.MaxResults)
	bounds := Bounds{Min: s.opts.MinResults, Max: s.opts.MaxResults}

	final, trace := Reconcile(result.Recommendations, global, res.Index.Len(), bounds)
	result.Recommendations = final
	result.Trace = append(result.Trace, trace...)

	if len(final) == 0 {
		return nil, ErrNoResults
	}

	logger.FromContext(ctx).Info("recommendations served",
		"results", len(final),
		"trace", result.Trace,
	)

	return result, nil
}

// options for Build
type BuildOptions struct {
	BatchSize   int
	Concurrency int
}

// Build embeds every catalogue item and assembles Resources ready to serve
func Build(ctx context.Context, cat *catalogue.Catalogue, emb embedder.Embedder, ext extractor.Extractor, opts BuildOptions) (*Resources, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, ErrEmptyCatalogue
	}

	if emb == nil {
		return nil, errors.New("embedder is required")
	}

	vectors, err := embedder.EmbedAll(ctx, emb, cat.Texts(), opts.BatchSize, opts.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to embed catalogue: %w", err)
	}

	index, err := retriever.NewIndex(cat.Items, vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	logger.Info("catalogue indexed",
		"source", cat.Source,
		"items", index.Len(),
		"dimensions", index.Dimensions(),
		"model", emb.Model(),
	)

	return &Resources{
		Index:     index,
		Embedder:  emb,
		Extractor: ext,
		Source:    cat.Source,
		Degraded:  cat.Degraded,
	}, nil
}

// FromEmbedded assembles Resources from items whose embeddings were computed
// offline; vectors must align with items. Each stored CombinedText must equal
// the text Normalize produces, otherwise the vectors describe other text and
// ErrStaleEmbeddings is returned.
func FromEmbedded(items []catalogue.Item, vectors [][]float32, emb embedder.Embedder, ext extractor.Extractor, source string, minSize int) (*Resources, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCatalogue
	}

	normalized := make([]catalogue.Item, len(items))
	for i, item := range items {
		stored := item.CombinedText

		item.Normalize()

		if item.CombinedText != stored {
			return nil, fmt.Errorf("%w: item %q", ErrStaleEmbeddings, item.URL)
		}

		normalized[i] = item
	}

	index, err := retriever.NewIndex(normalized, vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	return &Resources{
		Index:     index,
		Embedder:  emb,
		Extractor: ext,
		Source:    source,
		Degraded:  minSize > 0 && index.Len() < minSize,
	}, nil
}
