package selector

// relevance-ordered candidate lists, one per needed category plus overflow
type Buckets struct {
	Categories []string // needed categories, in priority order
	ByCategory [][]int  // ByCategory[i] holds the items whose first match is Categories[i]
	Other      []int    // items matching no needed category
}

// looks up the category labels of a candidate
type CategoriesFunc func(candidate int) []string
