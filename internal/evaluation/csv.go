package evaluation

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// reads the distinct non-empty queries of a CSV, in first-seen order.
// The query column is the first header containing "query", "text" or
// "job", or the first column when none does.
func ReadQueries(r io.Reader) ([]string, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	col := queryColumn(header)
	seen := make(map[string]bool)

	var queries []string
	for _, rec := range records {
		q := field(rec, col)
		if q == "" || seen[q] {
			continue
		}

		seen[q] = true
		queries = append(queries, q)
	}

	return queries, nil
}

// reads query/assessment-url pairs and groups them by query in first-seen order
func ReadLabels(r io.Reader) ([]LabeledQuery, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	qcol := queryColumn(header)

	ucol := urlColumn(header, qcol)
	if ucol < 0 {
		return nil, fmt.Errorf("could not find assessment url column in label data")
	}

	positions := make(map[string]int)

	var labels []LabeledQuery
	for _, rec := range records {
		q := field(rec, qcol)
		if q == "" {
			continue
		}

		pos, ok := positions[q]
		if !ok {
			pos = len(labels)
			positions[q] = pos
			labels = append(labels, LabeledQuery{Query: q})
		}

		if u := field(rec, ucol); u != "" {
			labels[pos].Relevant = append(labels[pos].Relevant, u)
		}
	}

	return labels, nil
}

// writes predictions as Query,Assessment_url rows
func WritePredictions(w io.Writer, predictions []Prediction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{predictionQueryColumn, predictionURLColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range predictions {
		if err := cw.Write([]string{p.Query, p.AssessmentURL}); err != nil {
			return fmt.Errorf("failed to write prediction: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv has no header")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return header, records[1:], nil
}

func queryColumn(header []string) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		for _, hint := range queryColumnHints {
			if strings.Contains(lower, hint) {
				return i
			}
		}
	}

	return 0
}

func urlColumn(header []string, queryCol int) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "assessment") && strings.Contains(lower, "url") {
			return i
		}
	}

	for i, h := range header {
		if i != queryCol && strings.Contains(strings.ToLower(h), "url") {
			return i
		}
	}

	return -1
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[col])
}
