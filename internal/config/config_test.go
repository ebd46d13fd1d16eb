package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceCSV, cfg.CatalogueSource)
	assert.Equal(t, "data/catalogue.csv", cfg.CataloguePath)
	assert.Equal(t, ProviderOpenAI, cfg.EmbedderProvider)
	assert.Equal(t, 5, cfg.MinResults)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, 10, cfg.DefaultTopK)
	assert.Equal(t, 377, cfg.MinCatalogueSize)
	assert.Equal(t, 10*time.Second, cfg.URLExtractionTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"ENVIRONMENT":            "production",
		"EMBEDDER_PROVIDER":      "Hashing",
		"CATALOGUE_SOURCE":       "postgres",
		"DATABASE_URL":           "postgres://localhost/catalogue",
		"MIN_RESULTS":            "3",
		"MAX_RESULTS":            "8",
		"URL_EXTRACTION_TIMEOUT": "5",
		"EMBED_TIMEOUT":          "1m",
		"CORS_ORIGINS":           "https://a.example, https://b.example,",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProviderHashing, cfg.EmbedderProvider)
	assert.Equal(t, 384, cfg.EmbedderDimensions)
	assert.Equal(t, SourcePostgres, cfg.CatalogueSource)
	assert.Equal(t, 3, cfg.MinResults)
	assert.Equal(t, 8, cfg.MaxResults)
	assert.Equal(t, 5*time.Second, cfg.URLExtractionTimeout)
	assert.Equal(t, time.Minute, cfg.EmbedTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "openai without key", env: map[string]string{}},
		{name: "unknown provider", env: map[string]string{"EMBEDDER_PROVIDER": "glove"}},
		{name: "unknown source", env: map[string]string{"EMBEDDER_PROVIDER": "hashing", "CATALOGUE_SOURCE": "s3"}},
		{name: "postgres without url", env: map[string]string{"EMBEDDER_PROVIDER": "hashing", "CATALOGUE_SOURCE": "postgres"}},
		{name: "max below min", env: map[string]string{"EMBEDDER_PROVIDER": "hashing", "MIN_RESULTS": "6", "MAX_RESULTS": "4"}},
		{name: "zero min", env: map[string]string{"EMBEDDER_PROVIDER": "hashing", "MIN_RESULTS": "0"}},
		{name: "zero top k", env: map[string]string{"EMBEDDER_PROVIDER": "hashing", "DEFAULT_TOP_K": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestIntAndDurationParsing(t *testing.T) {
	assert.Equal(t, 7, intOr(" 7 ", 1))
	assert.Equal(t, 1, intOr("seven", 1))
	assert.Equal(t, 2*time.Second, durationOr("2s", time.Hour))
	assert.Equal(t, time.Hour, durationOr("-2s", time.Hour))
	assert.Equal(t, time.Hour, durationOr("soon", time.Hour))
}

func TestParseFlags(t *testing.T) {
	flags := ParseCatalogueFlags([]string{"--path", "data/full.csv", "--clear"})
	assert.Equal(t, Flags{Path: "data/full.csv", Clear: true}, flags)

	predict := ParsePredictFlags([]string{"--queries", "q.csv", "--concurrency", "8"})
	assert.Equal(t, "q.csv", predict.Queries)
	assert.Equal(t, "predictions.csv", predict.Out)
	assert.Equal(t, 8, predict.Concurrency)
	assert.Equal(t, 10, predict.TopK)

	eval := ParseEvaluateFlags([]string{"--k", "5"})
	assert.Equal(t, 5, eval.K)

	query := ParseQueryFlags([]string{"--max-duration", "40", "--type", "Technical Skill", "Java", "developer"})
	assert.Equal(t, QueryFlags{Query: "Java developer", MaxDuration: 40, PreferredType: "Technical Skill"}, query)
}
