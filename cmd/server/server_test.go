package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/talentmatch/server/internal/config"
	"codeberg.org/talentmatch/server/internal/embedder"
	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

const testCatalogue = `url,name,description,test_type,duration
https://example.com/view/java-8/,Java 8,Core Java programming,Knowledge & Skills,30
https://example.com/view/sql/,SQL Server,Database queries,Knowledge & Skills,25
https://example.com/view/opq/,OPQ,Workplace personality questionnaire,Personality & Behavior,25
https://example.com/view/verbal/,Verbal Reasoning,Verbal reasoning ability,Ability & Aptitude,20
https://example.com/view/sales/,Sales Simulation,Sales role play,Simulations,60
https://example.com/view/team/,Team Types,Team personality and behavior,Personality & Behavior,15
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalogue.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogue), 0o600))

	cfg, err := config.FromEnv(func(key string) string {
		switch key {
		case "EMBEDDER_PROVIDER":
			return "hashing"
		case "EMBEDDER_DIMENSIONS":
			return "128"
		case "CATALOGUE_PATH":
			return path
		case "CORS_ORIGINS":
			return "https://app.example.com"
		}

		return ""
	})
	require.NoError(t, err)

	return cfg
}

func do(router http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestServerLifecycle(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	// resources load in the background; until then the service is unavailable
	w := do(srv.router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(srv.router, http.MethodPost, "/api/v1/recommend", `{"query":"java"}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.NoError(t, srv.LoadResources(context.Background()))

	w = do(srv.router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, float64(6), health["catalogue_size"])
	assert.Equal(t, true, health["degraded"])

	for _, path := range []string{"/recommend", "/api/v1/recommend"} {
		w = do(srv.router, http.MethodPost, path, `{"query":"Java developer with a good personality"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp struct {
			RecommendedAssessments []map[string]any `json:"recommended_assessments"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, len(resp.RecommendedAssessments), 5)
		assert.LessOrEqual(t, len(resp.RecommendedAssessments), 10)
	}

	w = do(srv.router, http.MethodPost, "/recommend", `{"query":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(srv.router, http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(srv.router, http.MethodGet, "/api/v1/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route not found")
}

func TestRequestIDMiddleware(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	w := do(srv.router, http.MethodGet, "/api/v1/ping", "", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = do(srv.router, http.MethodGet, "/api/v1/ping", "", map[string]string{requestIDHeader: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	w := do(srv.router, http.MethodOptions, "/api/v1/recommend", "", map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(srv.router, http.MethodOptions, "/api/v1/recommend", "", map[string]string{
		"Origin":                        "https://evil.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

// fails every embedding call, like a provider rejecting the API key
type failingEmbedder struct {
	err error
}

func (f failingEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return nil, f.err
}

func (f failingEmbedder) GenerateEmbeddings(_ context.Context, _ []string) ([][]float32, error) {
	return nil, f.err
}

func (f failingEmbedder) Dimensions() int { return 0 }

func (f failingEmbedder) Model() string { return "failing" }

var _ embedder.Embedder = failingEmbedder{}

func TestLoadInitialResourcesFailure(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	errUnauthorized := errors.New("embedding request failed with status 401")
	srv.services.Embedder = failingEmbedder{err: errUnauthorized}

	err = srv.LoadInitialResources(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnauthorized)
	assert.False(t, srv.holder.Ready())

	w := do(srv.router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoadInitialResourcesInterrupted(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	srv.services.Embedder = failingEmbedder{err: context.Canceled}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, srv.LoadInitialResources(ctx))
	assert.False(t, srv.holder.Ready())
}

func TestReloadKeepsCurrentResources(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)

	require.NoError(t, srv.LoadInitialResources(context.Background()))
	loaded := srv.holder.Load()

	srv.services.Embedder = failingEmbedder{err: errors.New("provider down")}

	require.Error(t, srv.LoadResources(context.Background()))
	assert.Same(t, loaded, srv.holder.Load())
}
