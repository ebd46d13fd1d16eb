package embedder

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Embedder for testing
type mockEmbedder struct {
	generateEmbeddingsFunc func(ctx context.Context, texts []string) ([][]float32, error)
	calls                  atomic.Int32
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	out, err := m.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return out[0], nil
}

func (m *mockEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls.Add(1)

	if m.generateEmbeddingsFunc != nil {
		return m.generateEmbeddingsFunc(ctx, texts)
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1}
	}

	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 2 }

func (m *mockEmbedder) Model() string { return "mock" }

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	return math.Sqrt(sum)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "hashing", config: Config{Provider: ProviderHashing, Dimensions: 64}},
		{name: "hashing without dimensions", config: Config{Provider: ProviderHashing}, wantErr: true},
		{name: "openai", config: Config{Provider: ProviderOpenAI, APIKey: "sk-test"}},
		{name: "openai without key", config: Config{Provider: ProviderOpenAI}, wantErr: true},
		{name: "unknown provider", config: Config{Provider: "word2vec"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, e)
		})
	}
}

func TestNormalizeL2(t *testing.T) {
	v := NormalizeL2([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := NormalizeL2([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestHashingEmbedder(t *testing.T) {
	ctx := context.Background()

	h, err := NewHashingEmbedder(128)
	require.NoError(t, err)

	assert.Equal(t, 128, h.Dimensions())
	assert.Equal(t, "hashing-bow-128", h.Model())

	a, err := h.GenerateEmbedding(ctx, "Java developer with SQL")
	require.NoError(t, err)
	assert.Len(t, a, 128)
	assert.InDelta(t, 1.0, norm(a), 1e-5)

	again, err := h.GenerateEmbedding(ctx, "java DEVELOPER with sql!")
	require.NoError(t, err)
	assert.Equal(t, a, again, "tokenization ignores case and punctuation")

	empty, err := h.GenerateEmbedding(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 128), empty)

	batch, err := h.GenerateEmbeddings(ctx, []string{"a b", "java developer"})
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, make([]float32, 128), batch[0], "single-rune tokens are dropped")

	_, err = h.GenerateEmbeddings(ctx, nil)
	assert.Error(t, err)
}

func TestHashingEmbedderSimilarity(t *testing.T) {
	ctx := context.Background()
	h, err := NewHashingEmbedder(512)
	require.NoError(t, err)

	query, _ := h.GenerateEmbedding(ctx, "java programming developer")
	near, _ := h.GenerateEmbedding(ctx, "java programming test for developer roles")
	far, _ := h.GenerateEmbedding(ctx, "personality questionnaire for sales managers")

	dot := func(a, b []float32) float32 {
		var s float32
		for i := range a {
			s += a[i] * b[i]
		}

		return s
	}

	assert.Greater(t, dot(query, near), dot(query, far))
}

func TestHashingEmbedderCanceled(t *testing.T) {
	h, err := NewHashingEmbedder(8)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.GenerateEmbedding(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmbedAllKeepsOrder(t *testing.T) {
	m := &mockEmbedder{}
	texts := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff", "g"}

	out, err := EmbedAll(context.Background(), m, texts, 2, 3)
	require.NoError(t, err)
	require.Len(t, out, len(texts))

	for i, text := range texts {
		assert.Equal(t, float32(len(text)), out[i][0])
	}

	assert.Equal(t, int32(4), m.calls.Load())
}

func TestEmbedAllDefaults(t *testing.T) {
	m := &mockEmbedder{}

	out, err := EmbedAll(context.Background(), m, []string{"a", "b", "c"}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, int32(1), m.calls.Load())

	out, err = EmbedAll(context.Background(), m, nil, 10, 1)
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestEmbedAllErrors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		m := &mockEmbedder{
			generateEmbeddingsFunc: func(_ context.Context, _ []string) ([][]float32, error) {
				return nil, errors.New("provider down")
			},
		}

		_, err := EmbedAll(context.Background(), m, []string{"a", "b"}, 1, 2)
		assert.ErrorContains(t, err, "provider down")
	})

	t.Run("short batch", func(t *testing.T) {
		m := &mockEmbedder{
			generateEmbeddingsFunc: func(_ context.Context, _ []string) ([][]float32, error) {
				return [][]float32{{1}}, nil
			},
		}

		_, err := EmbedAll(context.Background(), m, []string{"a", "b"}, 2, 1)
		assert.ErrorContains(t, err, "returned 1 embeddings")
	})
}
