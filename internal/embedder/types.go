package embedder

import "context"

// generates L2-normalized embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Model() string
}

// represents different embedding providers
type Provider string

const (
	ProviderOpenAI  Provider = "openai"
	ProviderHashing Provider = "hashing"
)

// holds configuration for embedder initialization
type Config struct {
	Provider   Provider
	APIKey     string
	Model      string // e.g., "text-embedding-3-small"
	BaseURL    string // OpenAI-compatible API root
	Dimensions int    // optional for openai, required for hashing

	// outbound throttling for the remote provider
	RequestsPerSecond float64
	Burst             int
}
