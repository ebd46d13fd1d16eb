package config

import "time"

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"

	defaultPort                 = "8080"
	defaultEnvironment          = "development"
	defaultCataloguePath        = "data/catalogue.csv"
	defaultMinCatalogueSize     = 377
	defaultEmbedderModel        = "text-embedding-3-small"
	defaultEmbedderBaseURL      = "https://api.openai.com/v1"
	defaultHashingDimensions    = 384
	defaultEmbedBatchSize       = 64
	defaultEmbedTimeout         = 30 * time.Second
	defaultURLExtractionTimeout = 10 * time.Second
	defaultMinResults           = 5
	defaultMaxResults           = 10
	defaultTopK                 = 10
)
