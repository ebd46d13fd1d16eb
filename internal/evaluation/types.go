package evaluation

import "context"

// returns recommended assessment urls for a query, best first
type RecommendFunc func(ctx context.Context, query string) ([]string, error)

// a query with its ground-truth assessment urls
type LabeledQuery struct {
	Query    string
	Relevant []string
}

// one row of a predictions file
type Prediction struct {
	Query         string
	AssessmentURL string
}

// the outcome of one labeled query
type QueryResult struct {
	Query            string
	Recall           float64
	RelevantCount    int
	RecommendedCount int
	RelevantInTopK   int
}

// Mean Recall@K over a label set
type Report struct {
	K       int
	Mean    float64
	Min     float64
	Max     float64
	Queries []QueryResult
	Failed  int
}
