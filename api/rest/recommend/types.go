package recommend

import (
	"context"

	"codeberg.org/talentmatch/server/internal/recommender"
)

// Request represents the request body for a recommendation
type Request struct {
	Query         string `json:"query"`
	MaxDuration   *int   `json:"max_duration,omitempty"`
	PreferredType string `json:"preferred_type,omitempty"`
}

// Response lists the recommended assessments, best first
type Response struct {
	RecommendedAssessments []Assessment `json:"recommended_assessments"`
}

// Assessment is the public view of a catalogue item
type Assessment struct {
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	AdaptiveSupport string   `json:"adaptive_support"`
	Description     string   `json:"description"`
	Duration        int      `json:"duration"`
	RemoteSupport   string   `json:"remote_support"`
	TestType        []string `json:"test_type"`
}

// Recommender is the slice of the recommendation service the handler needs
type Recommender interface {
	Recommend(ctx context.Context, req recommender.Request) (*recommender.Result, error)
}
