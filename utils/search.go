package utils

import "sort"

// LowerBound returns the first index i with xs[i] >= x, or len(xs).
func LowerBound(xs []float64, x float64) int {
	return sort.SearchFloat64s(xs, x)
}

// LowerBoundInt returns the first index i with xs[i] >= x, or len(xs).
func LowerBoundInt(xs []int, x int) int {
	return sort.SearchInts(xs, x)
}

// Bracket returns i such that xs[i] <= x <= xs[i+1] for x inside the node
// range. Outside the range it returns the nearest boundary pair.
//
// It assumes xs is sorted in ascending order and has at least two elements.
func Bracket(xs []float64, x float64) int {
	if len(xs) < 2 {
		panic("Bracket: need at least 2 nodes")
	}

	i := LowerBound(xs, x)

	if i <= 0 {
		return 0
	}
	if i >= len(xs) {
		return len(xs) - 2
	}
	return i - 1
}

// IsIncreasing reports whether xs is strictly increasing.
func IsIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i-1] < xs[i]) {
			return false
		}
	}
	return true
}

// IsNonDecreasing reports whether xs never decreases.
func IsNonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i-1] <= xs[i]) {
			return false
		}
	}
	return true
}
