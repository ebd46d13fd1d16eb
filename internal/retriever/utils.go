package retriever

import "math"

// tolerance when deciding whether a vector is unit length
const unitTolerance = 1e-3

// full cosine similarity; 0 for mismatched lengths or zero vectors
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// dot product; equals cosine similarity for unit vectors
func Dot(a, b []float32) float32 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	return float32(dot)
}

// unit length, or all zeros (an empty text embeds to the zero vector)
func isUnitOrZero(v []float32) bool {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	return sum == 0 || math.Abs(math.Sqrt(sum)-1) <= unitTolerance
}
