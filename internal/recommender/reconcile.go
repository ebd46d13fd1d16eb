package recommender

import "slices"

// Reconcile enforces the result count contract on a first-pass selection.
// global is the pure-relevance ordering of the whole catalogue (at least its
// top b.Max entries). Below b.Min the selection is augmented from global by
// url until the floor min(b.Min, catalogueSize) is met or b.Max is reached;
// if still short it is replaced by the top of global. The output is sorted
// by relevance, unique by url and never longer than b.Max.
func Reconcile(first, global []Recommendation, catalogueSize int, b Bounds) ([]Recommendation, Trace) {
	floor := min(b.Min, catalogueSize)
	trace := Trace{StateFloorChecked}

	out, seen := dedupeByURL(first)

	if len(out) >= b.Min {
		trace = append(trace, StatePassThrough)
	} else {
		trace = append(trace, StateFallbackAugmented)

		for _, rec := range global {
			if len(out) >= floor || len(out) >= b.Max {
				break
			}

			if seen[rec.Item.URL] {
				continue
			}

			seen[rec.Item.URL] = true
			out = append(out, rec)
		}

		if len(out) < floor {
			trace = append(trace, StateFallbackReplaced)
			out, _ = dedupeByURL(global[:min(floor, len(global))])
		}
	}

	sortByRelevance(out)

	trace = append(trace, StateCeilingTruncated)
	if len(out) > b.Max {
		out = out[:b.Max]
	}

	return out, trace
}

func dedupeByURL(recs []Recommendation) ([]Recommendation, map[string]bool) {
	seen := make(map[string]bool, len(recs))
	out := make([]Recommendation, 0, len(recs))

	for _, rec := range recs {
		if seen[rec.Item.URL] {
			continue
		}

		seen[rec.Item.URL] = true
		out = append(out, rec)
	}

	return slices.Clip(out), seen
}

// pure-relevance top n of the whole catalogue
func (r *Resources) topByRelevance(result *Result, n int) []Recommendation {
	n = min(n, len(result.ranked))
	out := make([]Recommendation, n)

	for i, s := range result.ranked[:n] {
		out[i] = Recommendation{Item: r.Index.Item(s.Index), Score: s.Score, Position: s.Index}
	}

	return out
}
