package selector

import "slices"

// Bucket walks ranked once and places every candidate in the bucket of the
// first needed category it carries, testing needed in its given order. A
// candidate matching several needed categories lands only in the earliest
// one; candidates matching none go to Other. Bucket order follows ranked.
func Bucket(ranked []int, categoriesOf CategoriesFunc, needed []string) Buckets {
	b := Buckets{
		Categories: slices.Clone(needed),
		ByCategory: make([][]int, len(needed)),
	}

	for _, candidate := range ranked {
		labels := categoriesOf(candidate)
		placed := false

		for i, category := range needed {
			if slices.Contains(labels, category) {
				b.ByCategory[i] = append(b.ByCategory[i], candidate)
				placed = true

				break
			}
		}

		if !placed {
			b.Other = append(b.Other, candidate)
		}
	}

	return b
}

// RoundRobin takes at most one item per needed bucket per pass, in bucket
// order, until topK items are collected or every needed bucket is exhausted;
// remaining slots are filled from Other in relevance order.
func RoundRobin(b Buckets, topK int) []int {
	if topK <= 0 {
		return nil
	}

	selected := make([]int, 0, topK)
	taken := make(map[int]bool, topK)
	cursors := make([]int, len(b.ByCategory))

	take := func(candidate int) {
		selected = append(selected, candidate)
		taken[candidate] = true
	}

	for len(selected) < topK && remaining(b.ByCategory, cursors) {
		for i, bucket := range b.ByCategory {
			if cursors[i] >= len(bucket) {
				continue
			}

			candidate := bucket[cursors[i]]
			cursors[i]++

			if taken[candidate] {
				continue
			}

			take(candidate)

			if len(selected) == topK {
				break
			}
		}
	}

	for _, candidate := range b.Other {
		if len(selected) == topK {
			break
		}

		if !taken[candidate] {
			take(candidate)
		}
	}

	return selected
}

// Select returns up to topK candidates from ranked. With no needed
// categories it bypasses balancing and returns the pure relevance prefix;
// bypassed reports which path was taken.
func Select(ranked []int, categoriesOf CategoriesFunc, needed []string, topK int) (selected []int, bypassed bool) {
	if topK <= 0 {
		return nil, len(needed) == 0 || categoriesOf == nil
	}

	if len(needed) == 0 || categoriesOf == nil {
		return slices.Clone(ranked[:min(topK, len(ranked))]), true
	}

	return RoundRobin(Bucket(ranked, categoriesOf, needed), topK), false
}

func remaining(buckets [][]int, cursors []int) bool {
	for i, bucket := range buckets {
		if cursors[i] < len(bucket) {
			return true
		}
	}

	return false
}
