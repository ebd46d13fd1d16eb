package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

type embeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Encoding   string   `json:"encoding_format"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

type OpenAIConfig struct {
	APIKey            string
	Model             string
	BaseURL           string
	Dimensions        int
	RequestsPerSecond float64
	Burst             int
}

// calls an OpenAI-compatible /embeddings endpoint and normalizes the output
type OpenAIEmbedder struct {
	config     OpenAIConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	dims       atomic.Int64
}

func NewOpenAIEmbedder(config OpenAIConfig) *OpenAIEmbedder {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	if config.BaseURL == "" {
		config.BaseURL = defaultOpenAIBaseURL
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaultRPS
	}

	if config.Burst <= 0 {
		config.Burst = defaultBurst
	}

	e := &OpenAIEmbedder{
		config:     config,
		httpClient: newRetryingClient(),
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}

	e.dims.Store(int64(config.Dimensions))

	return e
}

// builds an HTTP client that retries transient failures but not 500s
func newRetryingClient() *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = maxRetries
	retryClient.RetryWaitMax = maxRetryWait
	retryClient.CheckRetry = dontRetry500StatusPolicy(retryablehttp.ErrorPropagatedRetryPolicy)
	retryClient.Logger = logger.Default()

	client := retryClient.StandardClient()
	client.Timeout = requestTimeout

	return client
}

// wraps a retry policy so context errors and HTTP 500 responses are final
func dontRetry500StatusPolicy(policy retryablehttp.CheckRetry) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if resp != nil && resp.StatusCode == http.StatusInternalServerError {
			return false, err
		}

		return policy(ctx, resp, err)
	}
}

func (e *OpenAIEmbedder) Model() string {
	return e.config.Model
}

// returns the vector length, 0 until known
func (e *OpenAIEmbedder) Dimensions() int {
	return int(e.dims.Load())
}

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return embeddings[0], nil
}

func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	// the API rejects empty strings
	input := make([]string, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			t = " "
		}

		input[i] = t
	}

	jsonData, err := json.Marshal(embeddingRequest{
		Input:      input,
		Model:      e.config.Model,
		Encoding:   "float",
		Dimensions: e.config.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+"/embeddings", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send embedding request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("embedding request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var embResp embeddingResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}

	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(embResp.Data), len(texts))
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range embResp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("embedding response index %d out of range", data.Index)
		}

		embeddings[data.Index] = NormalizeL2(data.Embedding)
	}

	if err := e.checkDimensions(embeddings); err != nil {
		return nil, err
	}

	return embeddings, nil
}

// all vectors must share one length, stable across calls
func (e *OpenAIEmbedder) checkDimensions(embeddings [][]float32) error {
	for i, v := range embeddings {
		if len(v) == 0 {
			return fmt.Errorf("embedding %d is missing", i)
		}

		want := e.dims.Load()
		if want == 0 {
			e.dims.CompareAndSwap(0, int64(len(v)))
			want = e.dims.Load()
		}

		if int64(len(v)) != want {
			return fmt.Errorf("embedding dimension mismatch: got %d want %d", len(v), want)
		}
	}

	return nil
}
