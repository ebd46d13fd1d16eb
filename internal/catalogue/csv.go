package catalogue

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"codeberg.org/talentmatch/server/internal/logger"
)

// reads the catalogue from a CSV file on disk
type CSVSource struct {
	Path string
}

func (s CSVSource) Name() string {
	return "csv"
}

func (s CSVSource) LoadItems(_ context.Context) ([]Item, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", s.Path, err)
	}
	defer f.Close()

	items, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalogue file %s: %w", s.Path, err)
	}

	return items, nil
}

// parses catalogue rows by header name; rows with the wrong field count are
// dropped, a missing header or a syntax error rejects the whole input
func ParseCSV(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalogue is empty")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := indexColumns(header)

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	for _, name := range expectedColumns {
		if !hasColumn(cols, name) {
			logger.Warn("catalogue column missing, using defaults", "column", name)
		}
	}

	var items []Item
	line := 1

	for {
		record, err := reader.Read()
		line++

		if err == io.EOF {
			break
		}

		if err != nil {
			if stderrors.Is(err, csv.ErrFieldCount) {
				logger.Warn("dropping malformed catalogue row", "line", line, "error", err)
				continue
			}

			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		items = append(items, itemFromRecord(record, cols, line))
	}

	return items, nil
}

// splits a "|"-joined category string, trimming and dropping empties
func ParseCategories(value string) []string {
	var out []string

	for part := range strings.SplitSeq(value, categorySeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// reports whether the header carries name or one of its aliases
func hasColumn(cols map[string]int, name string) bool {
	if _, ok := cols[name]; ok {
		return true
	}

	for _, alias := range columnAliases[name] {
		if _, ok := cols[alias]; ok {
			return true
		}
	}

	return false
}

func itemFromRecord(record []string, cols map[string]int, line int) Item {
	get := func(names ...string) string {
		for _, name := range names {
			if idx, ok := cols[name]; ok && idx < len(record) {
				return record[idx]
			}
		}

		return ""
	}

	item := Item{
		ID:              get("assessment_id", "id"),
		URL:             get("url"),
		Name:            get("name"),
		Description:     get("description"),
		AdaptiveSupport: get("adaptive_support"),
		RemoteSupport:   get("remote_support"),
		Skills:          get("skills"),
		Categories:      ParseCategories(get("test_type")),
	}

	raw := get("duration_minutes", "duration")
	duration, ok := parseDuration(raw)
	if !ok {
		logger.Warn("invalid duration, using default", "line", line, "value", raw)
	}

	item.DurationMinutes = duration

	return item
}

// parses "30", "30.0" or "" (unknown); negative or garbage values fall back
func parseDuration(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultDuration, true
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return defaultDuration, false
	}

	return int(math.Round(v)), true
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}

	return cols
}
