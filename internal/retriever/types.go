package retriever

import "codeberg.org/talentmatch/server/internal/catalogue"

// Index pairs catalogue items with their embedding matrix. Row i of the
// matrix is the embedding of items[i].CombinedText. An Index is never
// mutated after NewIndex returns, so concurrent readers need no locking.
type Index struct {
	items      []catalogue.Item
	vectors    [][]float32
	dims       int
	normalized bool
}

// optional request filters; the zero value keeps everything
type Filter struct {
	MaxDuration   *int
	PreferredType string
}

// an index position with its similarity to the query
type Scored struct {
	Index int
	Score float32
}
