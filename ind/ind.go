// Package ind turns samples of a function into samples of the indicator
// of the event {value > barrier}.
package ind

// Scheme overwrites values with indicator samples.
type Scheme interface {
	Indicator(values []float64, barrier float64)
}

// Naive is the hard 0/1 step: 1 where the value reaches the barrier.
type Naive struct{}

func (Naive) Indicator(values []float64, barrier float64) {
	for i, v := range values {
		if v >= barrier {
			values[i] = 1
		} else {
			values[i] = 0
		}
	}
}

// Smart assigns to each node the mean, over its two adjacent cells, of the
// fraction of the cell lying above the barrier. Crossing points are found by
// linear interpolation. Values stay in [0, 1] and are exactly 0 or 1 away
// from barrier crossings.
//
// The scan runs in ascending index order and carries the contribution of
// the previous cell; every cell is computed from the original samples.
type Smart struct{}

func (Smart) Indicator(values []float64, barrier float64) {
	n := len(values)
	if n == 0 {
		return
	}

	left := values[0] - barrier
	var half float64
	if left > 0 {
		half = 0.5
	}
	for i := 0; i < n-1; i++ {
		right := values[i+1] - barrier
		acc := half
		below := left <= 0
		if (below && right > 0) || (!below && right < 0) {
			half = 0.5 * right / (right - left)
		} else {
			half = 0
		}
		if !below {
			half = 0.5 - half
		}
		values[i] = acc + half
		left = right
	}
	if left <= 0 {
		values[n-1] = half
	} else {
		values[n-1] = half + 0.5
	}
}
