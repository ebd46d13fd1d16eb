package catalogue

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/talentmatch/server/internal/categories"
	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

type stubSource struct {
	items []Item
	err   error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) LoadItems(_ context.Context) ([]Item, error) {
	return s.items, s.err
}

func TestItemNormalize(t *testing.T) {
	item := Item{
		URL:             "  https://example.com/view/java-8/ ",
		Name:            " Java 8 ",
		Description:     "Core Java knowledge",
		Skills:          "java, oop",
		Categories:      []string{" Knowledge & Skills", "", "Knowledge & Skills", "Simulations"},
		AdaptiveSupport: "yes",
		RemoteSupport:   "",
		DurationMinutes: -5,
	}

	item.Normalize()

	assert.Equal(t, "https://example.com/view/java-8/", item.URL)
	assert.Equal(t, "Java 8", item.Name)
	assert.Equal(t, []string{categories.KnowledgeSkills, categories.Simulations}, item.Categories)
	assert.Equal(t, categories.KnowledgeSkills, item.PrimaryCategory)
	assert.Equal(t, "Yes", item.AdaptiveSupport)
	assert.Equal(t, "Yes", item.RemoteSupport)
	assert.Equal(t, 0, item.DurationMinutes)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t,
		"Java 8. Core Java knowledge. Skills: java, oop. Types: Knowledge & Skills",
		item.CombinedText,
	)
}

func TestItemNormalizeWithoutCategories(t *testing.T) {
	item := Item{URL: "https://example.com/a", Name: "A"}
	item.Normalize()

	assert.Equal(t, categories.Unknown, item.PrimaryCategory)
	assert.Equal(t, "No", item.AdaptiveSupport)
	assert.Equal(t, "A. . Skills: . Types: Unknown", item.CombinedText)
}

func TestItemNormalizeIDIsStable(t *testing.T) {
	a := Item{URL: "https://example.com/a", Name: "A"}
	b := Item{URL: "https://example.com/a", Name: "Other name"}

	a.Normalize()
	b.Normalize()

	assert.Equal(t, a.ID, b.ID)
}

func TestWithCategories(t *testing.T) {
	base := Item{URL: "https://example.com/a", Name: "A", Categories: []string{categories.Simulations}}
	base.Normalize()

	changed := base.WithCategories(categories.Competencies)

	assert.Equal(t, []string{categories.Simulations}, base.Categories)
	assert.Equal(t, categories.Competencies, changed.PrimaryCategory)
	assert.True(t, strings.HasSuffix(changed.CombinedText, "Types: Competencies"))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("source error falls back to sample", func(t *testing.T) {
		cat := Load(ctx, stubSource{err: errors.New("boom")}, 0)

		assert.Equal(t, SourceSample, cat.Source)
		assert.True(t, cat.Degraded)
		assert.Equal(t, 2, cat.Len())
	})

	t.Run("no valid rows falls back to sample", func(t *testing.T) {
		cat := Load(ctx, stubSource{items: []Item{{Name: "no url"}}}, 0)
		assert.Equal(t, SourceSample, cat.Source)
	})

	t.Run("drops invalid and duplicate rows", func(t *testing.T) {
		cat := Load(ctx, stubSource{items: []Item{
			{URL: "https://example.com/a", Name: "First"},
			{URL: "https://example.com/b"},
			{URL: "https://example.com/a", Name: "Duplicate"},
			{URL: "https://example.com/c", Name: "Third"},
		}}, 0)

		require.Equal(t, 2, cat.Len())
		assert.Equal(t, "First", cat.Items[0].Name)
		assert.Equal(t, "Third", cat.Items[1].Name)
		assert.False(t, cat.Degraded)
		assert.Equal(t, "stub", cat.Source)
	})

	t.Run("below minimum size is degraded", func(t *testing.T) {
		cat := Load(ctx, stubSource{items: []Item{{URL: "https://example.com/a", Name: "A"}}}, 377)

		assert.True(t, cat.Degraded)
		assert.Equal(t, 1, cat.Len())
	})
}

func TestSample(t *testing.T) {
	cat := Sample()

	require.Equal(t, 2, cat.Len())

	for _, item := range cat.Items {
		assert.NoError(t, item.Validate())
		assert.NotEmpty(t, item.CombinedText)
	}

	assert.Len(t, cat.Texts(), 2)
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.csv")

	content := "url,name,description,test_type,duration\n" +
		"https://example.com/a,A,Alpha,Simulations,20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	items, err := CSVSource{Path: path}.LoadItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].DurationMinutes)

	_, err = CSVSource{Path: filepath.Join(dir, "missing.csv")}.LoadItems(context.Background())
	assert.Error(t, err)
}
