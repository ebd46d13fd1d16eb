package config

import "time"

type Config struct {
	Port        string
	Environment string

	// catalogue source
	CatalogueSource  string // "csv" or "postgres"
	CataloguePath    string
	DatabaseURL      string
	MinCatalogueSize int

	// embedding provider
	EmbedderProvider   string // "openai" or "hashing"
	EmbedderAPIKey     string
	EmbedderModel      string
	EmbedderBaseURL    string
	EmbedderDimensions int
	EmbedBatchSize     int
	EmbedTimeout       time.Duration

	// query expansion
	URLExtractionTimeout time.Duration

	// result bounds
	MinResults  int
	MaxResults  int
	DefaultTopK int

	CORSOrigins []string
}

type Flags struct {
	Path  string
	Clear bool
}

type PredictFlags struct {
	Queries     string
	Out         string
	TopK        int
	Concurrency int
}

type EvaluateFlags struct {
	Labels string
	K      int
}

type QueryFlags struct {
	Query         string
	MaxDuration   int // negative means no limit
	PreferredType string
	Raw           bool // skip the result count contract
}
