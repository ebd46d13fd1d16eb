package recommend

import (
	"testing"

	"codeberg.org/talentmatch/server/internal/embedder"
	"github.com/stretchr/testify/require"
)

func hashing(t *testing.T) *embedder.HashingEmbedder {
	t.Helper()

	h, err := embedder.NewHashingEmbedder(64)
	require.NoError(t, err)

	return h
}
