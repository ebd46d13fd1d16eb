package embedder

import (
	"math"
	"time"
)

const (
	defaultOpenAIModel   = "text-embedding-3-small"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultRPS           = 50
	defaultBurst         = 10
	requestTimeout       = 60 * time.Second
	maxRetries           = 3
	maxRetryWait         = 5 * time.Second
	maxResponseBytes     = 64 << 20
	hashingModelName     = "hashing-bow"
)

// scales v to unit length in place; zero vectors are left untouched
func NormalizeL2(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	if sum == 0 {
		return v
	}

	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}

	return v
}
