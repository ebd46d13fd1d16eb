package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnv(os.Getenv)
}

// builds a Config from a lookup function (os.Getenv in production)
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:                 withDefault(getenv("PORT"), defaultPort),
		Environment:          withDefault(getenv("ENVIRONMENT"), defaultEnvironment),
		CatalogueSource:      strings.ToLower(withDefault(getenv("CATALOGUE_SOURCE"), SourceCSV)),
		CataloguePath:        withDefault(getenv("CATALOGUE_PATH"), defaultCataloguePath),
		DatabaseURL:          getenv("DATABASE_URL"),
		EmbedderProvider:     strings.ToLower(withDefault(getenv("EMBEDDER_PROVIDER"), ProviderOpenAI)),
		EmbedderAPIKey:       getenv("OPENAI_API_KEY"),
		EmbedderModel:        withDefault(getenv("EMBEDDER_MODEL"), defaultEmbedderModel),
		EmbedderBaseURL:      withDefault(getenv("EMBEDDER_BASE_URL"), defaultEmbedderBaseURL),
		MinCatalogueSize:     intOr(getenv("MIN_CATALOGUE_SIZE"), defaultMinCatalogueSize),
		EmbedderDimensions:   intOr(getenv("EMBEDDER_DIMENSIONS"), 0),
		EmbedBatchSize:       intOr(getenv("EMBED_BATCH_SIZE"), defaultEmbedBatchSize),
		EmbedTimeout:         durationOr(getenv("EMBED_TIMEOUT"), defaultEmbedTimeout),
		URLExtractionTimeout: durationOr(getenv("URL_EXTRACTION_TIMEOUT"), defaultURLExtractionTimeout),
		MinResults:           intOr(getenv("MIN_RESULTS"), defaultMinResults),
		MaxResults:           intOr(getenv("MAX_RESULTS"), defaultMaxResults),
		DefaultTopK:          intOr(getenv("DEFAULT_TOP_K"), defaultTopK),
		CORSOrigins:          splitList(withDefault(getenv("CORS_ORIGINS"), "*")),
	}

	if cfg.EmbedderProvider == ProviderHashing && cfg.EmbedderDimensions <= 0 {
		cfg.EmbedderDimensions = defaultHashingDimensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checks cross-field constraints
func (c *Config) Validate() error {
	switch c.CatalogueSource {
	case SourceCSV:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required when CATALOGUE_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unsupported catalogue source: %s", c.CatalogueSource)
	}

	switch c.EmbedderProvider {
	case ProviderOpenAI:
		if c.EmbedderAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	case ProviderHashing:
	default:
		return fmt.Errorf("unsupported embedder provider: %s", c.EmbedderProvider)
	}

	if c.MinResults < 1 {
		return fmt.Errorf("MIN_RESULTS must be at least 1, got %d", c.MinResults)
	}

	if c.MaxResults < c.MinResults {
		return fmt.Errorf("MAX_RESULTS (%d) must not be smaller than MIN_RESULTS (%d)", c.MaxResults, c.MinResults)
	}

	if c.DefaultTopK < 1 {
		return fmt.Errorf("DEFAULT_TOP_K must be at least 1, got %d", c.DefaultTopK)
	}

	if c.EmbedBatchSize < 1 {
		return fmt.Errorf("EMBED_BATCH_SIZE must be at least 1, got %d", c.EmbedBatchSize)
	}

	return nil
}

// reports whether the process runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return strings.TrimSpace(value)
}

func intOr(value string, fallback int) int {
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}

	return n
}

// accepts Go durations ("10s") or plain seconds ("10")
func durationOr(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}

	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}

	return fallback
}

func splitList(value string) []string {
	var out []string

	for part := range strings.SplitSeq(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
