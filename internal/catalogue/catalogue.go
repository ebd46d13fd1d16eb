package catalogue

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/talentmatch/server/internal/categories"
	"codeberg.org/talentmatch/server/internal/logger"
	"github.com/google/uuid"
)

// fills every derived field from the source fields; the only writer of CombinedText
func (it *Item) Normalize() {
	it.URL = strings.TrimSpace(it.URL)
	it.Name = strings.TrimSpace(it.Name)
	it.Description = strings.TrimSpace(it.Description)
	it.Skills = strings.TrimSpace(it.Skills)
	it.Categories = categories.Clean(it.Categories)

	if it.ID = strings.TrimSpace(it.ID); it.ID == "" && it.URL != "" {
		it.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(it.URL)).String()
	}

	if it.DurationMinutes < 0 {
		it.DurationMinutes = defaultDuration
	}

	it.AdaptiveSupport = normalizeFlag(it.AdaptiveSupport, defaultAdaptiveSupport)
	it.RemoteSupport = normalizeFlag(it.RemoteSupport, defaultRemoteSupport)

	it.PrimaryCategory = categories.Unknown
	if len(it.Categories) > 0 {
		it.PrimaryCategory = it.Categories[0]
	}

	it.CombinedText = it.Name + ". " +
		it.Description + ". " +
		"Skills: " + it.Skills + ". " +
		"Types: " + it.PrimaryCategory
}

// reports whether the item is usable as a recommendation
func (it *Item) Validate() error {
	if it.URL == "" {
		return fmt.Errorf("item has empty url")
	}

	if it.Name == "" {
		return fmt.Errorf("item %s has empty name", it.URL)
	}

	return nil
}

// reports whether the item carries the given category label
func (it *Item) HasCategory(label string) bool {
	for _, c := range it.Categories {
		if c == label {
			return true
		}
	}

	return false
}

// returns a normalized copy of the item with new categories
func (it Item) WithCategories(labels ...string) Item {
	it.Categories = labels
	it.Normalize()

	return it
}

// loads items from the source, falling back to the sample catalogue when
// the source fails or yields nothing usable; never returns an empty catalogue
func Load(ctx context.Context, src Source, minSize int) *Catalogue {
	items, err := src.LoadItems(ctx)
	if err != nil {
		logger.Warn("catalogue source unavailable, using sample catalogue",
			"source", src.Name(),
			"error", err,
		)

		return Sample()
	}

	cleaned := clean(items)
	if len(cleaned) == 0 {
		logger.Error("catalogue source produced no valid items, using sample catalogue",
			"source", src.Name(),
			"rows", len(items),
		)

		return Sample()
	}

	cat := &Catalogue{Items: cleaned, Source: src.Name()}

	if minSize > 0 && cat.Len() < minSize {
		cat.Degraded = true
		logger.Warn("catalogue is smaller than expected",
			"source", src.Name(),
			"items", cat.Len(),
			"expected_at_least", minSize,
		)
	}

	logger.Info("catalogue loaded", "source", src.Name(), "items", cat.Len())

	return cat
}

// normalizes, validates and deduplicates by url (first row wins)
func clean(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))

	for i := range items {
		item := items[i]
		item.Normalize()

		if err := item.Validate(); err != nil {
			logger.Warn("dropping catalogue row", "row", i, "error", err)
			continue
		}

		if seen[item.URL] {
			logger.Warn("dropping duplicate catalogue row", "row", i, "url", item.URL)
			continue
		}

		seen[item.URL] = true
		out = append(out, item)
	}

	return out
}

// returns the number of items
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}

	return len(c.Items)
}

// returns the text to embed for each item, aligned with Items
func (c *Catalogue) Texts() []string {
	texts := make([]string, len(c.Items))
	for i := range c.Items {
		texts[i] = c.Items[i].CombinedText
	}

	return texts
}

func normalizeFlag(value, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "1":
		return flagYes
	case "no", "n", "false", "0":
		return flagNo
	default:
		return fallback
	}
}
