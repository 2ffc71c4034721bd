package mathutil

import "math"

// LogZero represents log(0). Transitions and paths that are impossible carry
// this value through the lattice unchanged.
var LogZero = math.Inf(-1)

// IsLogZero reports whether v is log(0).
func IsLogZero(v float64) bool {
	return math.IsInf(v, -1)
}

// ArgMax returns the index of the largest element. Ties resolve to the lowest
// index, and a slice holding only LogZero returns 0. Returns -1 for an empty slice.
func ArgMax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
