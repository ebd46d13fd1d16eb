package retriever

import (
	"testing"

	"codeberg.org/talentmatch/server/internal/catalogue"
	"codeberg.org/talentmatch/server/internal/categories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(url string, duration int, labels ...string) catalogue.Item {
	it := catalogue.Item{URL: url, Name: url, DurationMinutes: duration, Categories: labels}
	it.Normalize()

	return it
}

func testIndex(t *testing.T) *Index {
	t.Helper()

	items := []catalogue.Item{
		item("a", 30, categories.KnowledgeSkills),
		item("b", 60, categories.PersonalityBehavior),
		item("c", 20, categories.AbilityAptitude, categories.KnowledgeSkills),
		item("d", 45),
	}

	vectors := [][]float32{
		{1, 0},
		{0, 1},
		{0.6, 0.8},
		{-1, 0},
	}

	idx, err := NewIndex(items, vectors)
	require.NoError(t, err)

	return idx
}

func TestNewIndexValidation(t *testing.T) {
	items := []catalogue.Item{item("a", 0), item("b", 0)}

	_, err := NewIndex(items, [][]float32{{1, 0}})
	assert.ErrorContains(t, err, "mismatch")

	_, err = NewIndex(items, [][]float32{{1, 0}, {1, 0, 0}})
	assert.ErrorContains(t, err, "dimension")

	_, err = NewIndex(items, [][]float32{{1, 0}, {}})
	assert.ErrorContains(t, err, "empty")
}

func TestIndexDoesNotAliasInput(t *testing.T) {
	vectors := [][]float32{{1, 0}}
	idx, err := NewIndex([]catalogue.Item{item("a", 0)}, vectors)
	require.NoError(t, err)

	vectors[0][0] = 42

	assert.Equal(t, float32(1), idx.Vector(0)[0])
}

func TestScores(t *testing.T) {
	idx := testIndex(t)

	scores, err := idx.Scores([]float32{1, 0})
	require.NoError(t, err)
	require.Len(t, scores, 4)

	assert.InDelta(t, 1.0, scores[0], 1e-6)
	assert.InDelta(t, 0.0, scores[1], 1e-6)
	assert.InDelta(t, 0.6, scores[2], 1e-6)
	assert.InDelta(t, -1.0, scores[3], 1e-6)

	for _, s := range scores {
		assert.GreaterOrEqual(t, s, float32(-1))
		assert.LessOrEqual(t, s, float32(1))
	}

	_, err = idx.Scores([]float32{1, 0, 0})
	assert.Error(t, err)
}

func TestScoresUnnormalizedQuery(t *testing.T) {
	idx := testIndex(t)

	scores, err := idx.Scores([]float32{3, 0})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, scores[0], 1e-6)
	assert.InDelta(t, 0.6, scores[2], 1e-6)
}

func TestRank(t *testing.T) {
	scores := []float32{0.5, 0.9, 0.5, 0.1}

	assert.Equal(t, []int{1, 0, 2, 3}, Rank(scores, []int{0, 1, 2, 3}))
	assert.Equal(t, []int{0, 2}, Rank(scores, []int{2, 0}))
}

func TestWithScores(t *testing.T) {
	got := WithScores([]float32{0.1, 0.7}, []int{1, 0})
	assert.Equal(t, []Scored{{Index: 1, Score: 0.7}, {Index: 0, Score: 0.1}}, got)
}

func TestFilter(t *testing.T) {
	idx := testIndex(t)
	all := idx.All()
	limit := 30

	tests := []struct {
		name   string
		filter Filter
		active bool
		want   []int
	}{
		{name: "zero value keeps everything", filter: Filter{}, active: false, want: all},
		{name: "max duration inclusive", filter: Filter{MaxDuration: &limit}, active: true, want: []int{0, 2}},
		{name: "display name", filter: Filter{PreferredType: "Technical Skill"}, active: true, want: []int{0, 2}},
		{name: "internal label", filter: Filter{PreferredType: categories.PersonalityBehavior}, active: true, want: []int{1}},
		{name: "any is no filter", filter: Filter{PreferredType: "Any"}, active: false, want: all},
		{name: "combined", filter: Filter{MaxDuration: &limit, PreferredType: "Cognitive Ability"}, active: true, want: []int{2}},
		{name: "nothing passes", filter: Filter{PreferredType: categories.Simulations}, active: true, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.filter.Active())
			assert.Equal(t, tt.want, tt.filter.Apply(idx, all))
		})
	}
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{2, 0}, []float32{5, 0}), 1e-6)
	assert.Equal(t, float32(0), Cosine([]float32{0, 0}, []float32{1, 0}))
	assert.Equal(t, float32(0), Cosine([]float32{1}, []float32{1, 0}))
}

func TestEmptyIndex(t *testing.T) {
	var idx *Index
	assert.Equal(t, 0, idx.Len())

	empty, err := NewIndex(nil, nil)
	require.NoError(t, err)

	scores, err := empty.Scores([]float32{1})
	assert.NoError(t, err)
	assert.Empty(t, scores)
}
