package embedder

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// HashingEmbedder is a deterministic feature-hashing bag-of-words embedder.
// It needs no network or model files, so it backs offline runs and tests.
// Each token is hashed into one of Dimensions buckets with a hash-derived
// sign; the resulting term-frequency vector is L2-normalized.
type HashingEmbedder struct {
	dims int
}

func NewHashingEmbedder(dims int) (*HashingEmbedder, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("hashing embedder needs positive dimensions, got %d", dims)
	}

	return &HashingEmbedder{dims: dims}, nil
}

func (h *HashingEmbedder) Model() string {
	return fmt.Sprintf("%s-%d", hashingModelName, h.dims)
}

func (h *HashingEmbedder) Dimensions() int {
	return h.dims
}

func (h *HashingEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return h.embed(text), nil
}

func (h *HashingEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	out := make([][]float32, len(texts))

	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out[i] = h.embed(text)
	}

	return out, nil
}

func (h *HashingEmbedder) embed(text string) []float32 {
	vec := make([]float32, h.dims)

	for _, tok := range tokenize(text) {
		hasher := fnv.New64a()
		hasher.Write([]byte(tok)) //nolint:errcheck,gosec // hash writes never fail

		sum := hasher.Sum64()
		idx := int(sum % uint64(h.dims))

		if sum&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}

	return NormalizeL2(vec)
}

// lower-cased alphanumeric tokens longer than one rune
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			out = append(out, f)
		}
	}

	return out
}
