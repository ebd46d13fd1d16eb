package retriever

import (
	"cmp"
	"fmt"
	"slices"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/categories"
)

// NewIndex builds an Index; vectors must align 1:1 with items and share one length.
func NewIndex(items []catalogue.Item, vectors [][]float32) (*Index, error) {
	if len(items) != len(vectors) {
		return nil, fmt.Errorf("items and embeddings length mismatch: %d items, %d embeddings", len(items), len(vectors))
	}

	idx := &Index{
		items:      slices.Clone(items),
		vectors:    make([][]float32, len(vectors)),
		normalized: true,
	}

	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("embedding %d is empty", i)
		}

		if idx.dims == 0 {
			idx.dims = len(v)
		}

		if len(v) != idx.dims {
			return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(v), idx.dims)
		}

		if !isUnitOrZero(v) {
			idx.normalized = false
		}

		idx.vectors[i] = slices.Clone(v)
	}

	return idx, nil
}

// returns the number of indexed items
func (x *Index) Len() int {
	if x == nil {
		return 0
	}

	return len(x.items)
}

// returns the embedding length (0 for an empty index)
func (x *Index) Dimensions() int {
	return x.dims
}

// returns the item at position i
func (x *Index) Item(i int) catalogue.Item {
	return x.items[i]
}

// returns the categories of the item at position i
func (x *Index) CategoriesOf(i int) []string {
	return x.items[i].Categories
}

// returns the embedding at position i; callers must not modify it
func (x *Index) Vector(i int) []float32 {
	return x.vectors[i]
}

// returns every position 0..Len()-1
func (x *Index) All() []int {
	all := make([]int, x.Len())
	for i := range all {
		all[i] = i
	}

	return all
}

// computes the similarity of query to every row, aligned with item positions
func (x *Index) Scores(query []float32) ([]float32, error) {
	if x.Len() == 0 {
		return nil, nil
	}

	if len(query) != x.dims {
		return nil, fmt.Errorf("query embedding has dimension %d, index has %d", len(query), x.dims)
	}

	useDot := x.normalized && isUnitOrZero(query)
	scores := make([]float32, len(x.vectors))

	for i, v := range x.vectors {
		if useDot {
			scores[i] = clamp(Dot(query, v))
		} else {
			scores[i] = clamp(Cosine(query, v))
		}
	}

	return scores, nil
}

// orders candidates by descending score, ties broken by ascending position
func Rank(scores []float32, candidates []int) []int {
	ranked := slices.Clone(candidates)

	slices.SortFunc(ranked, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	return ranked
}

// pairs ranked positions with their scores
func WithScores(scores []float32, ranked []int) []Scored {
	out := make([]Scored, len(ranked))
	for i, idx := range ranked {
		out[i] = Scored{Index: idx, Score: scores[idx]}
	}

	return out
}

// reports whether the filter restricts anything
func (f Filter) Active() bool {
	return f.MaxDuration != nil || typeFilterLabels(f.PreferredType) != nil
}

// keeps the candidates that pass every configured filter, preserving order
func (f Filter) Apply(x *Index, candidates []int) []int {
	labels := typeFilterLabels(f.PreferredType)
	out := make([]int, 0, len(candidates))

	for _, i := range candidates {
		item := x.items[i]

		if f.MaxDuration != nil && item.DurationMinutes > *f.MaxDuration {
			continue
		}

		if labels != nil && !slices.ContainsFunc(labels, item.HasCategory) {
			continue
		}

		out = append(out, i)
	}

	return out
}

// nil means "no type filter"
func typeFilterLabels(preferred string) []string {
	return categories.FromPreference(preferred)
}

func clamp(s float32) float32 {
	return max(-1, min(1, s))
}
