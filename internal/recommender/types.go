package recommender

import (
	"errors"
	"time"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/extractor"
	"codeberg.org/talentmatch/server/internal/retriever"
)

var (
	// the query is empty after trimming
	ErrInvalidQuery = errors.New("query must be a non-empty string")

	// resources have not been loaded
	ErrNotReady = errors.New("recommendation resources are not initialized")

	// the index holds no items
	ErrEmptyCatalogue = errors.New("catalogue is empty")

	// stored vectors were computed from text that no longer matches the items
	ErrStaleEmbeddings = errors.New("stored embeddings do not match catalogue text")

	// every selection and fallback pass came back empty
	ErrNoResults = errors.New("no assessments available")
)

// Resources is the read-only state a request needs. A value is built once
// and never modified; refreshes build a new value and swap it in a Holder.
type Resources struct {
	Index     *retriever.Index
	Embedder  embedder.Embedder
	Extractor extractor.Extractor // optional; nil disables URL expansion
	Source    string
	Degraded  bool
}

// tunables shared by every request
type Options struct {
	MinResults   int
	MaxResults   int
	DefaultTopK  int
	EmbedTimeout time.Duration
}

// one recommendation call
type Request struct {
	Query         string
	TopK          int
	MaxDuration   *int
	PreferredType string
}

// an item with its relevance to the query
type Recommendation struct {
	Item     catalogue.Item
	Score    float32
	Position int // catalogue position, used as the deterministic tie-break
}

// the output of Recommend
type Result struct {
	Recommendations []Recommendation
	QueryText       string   // text that was embedded (extracted page text for URL queries)
	Needed          []string // needed categories used for balancing
	Trace           Trace

	ranked []retriever.Scored // global relevance order, reused by Reconcile
}

// a step of the selection state machine
type State string

const (
	StateFiltered            State = "filtered"
	StateFilterFallback      State = "filter_fallback"
	StateBucketed            State = "bucketed"
	StateBypassedToRelevance State = "bypassed_to_relevance"
	StateRoundRobinSelected  State = "round_robin_selected"
	StateFloorChecked        State = "floor_checked"
	StatePassThrough         State = "pass_through"
	StateFallbackAugmented   State = "fallback_augmented"
	StateFallbackReplaced    State = "fallback_replaced"
	StateCeilingTruncated    State = "ceiling_truncated"
)

// the states a request went through, in order
type Trace []State

// the result count contract
type Bounds struct {
	Min int
	Max int
}

const (
	defaultTopK         = 10
	defaultMinResults   = 5
	defaultMaxResults   = 10
	defaultEmbedTimeout = 30 * time.Second
)
