// Package interp reconstructs functions from values at increasing nodes.
package interp

import (
	"fmt"

	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/numerr"
	"github.com/meenmo/lattice/utils"
)

// Scheme interpolates values y given at strictly increasing nodes x. The
// result is defined on [x[0], x[len(x)-1]].
type Scheme interface {
	Interpolate(x, y []float64) (function.Function, error)
}

func check(x, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return numerr.Size(fmt.Sprintf("interpolation with %d nodes and %d values", len(x), len(y)))
	}
	if !utils.IsIncreasing(x) {
		return numerr.Sort("interpolation nodes")
	}
	return nil
}

// Linear is piecewise linear interpolation.
type Linear struct{}

func (Linear) Interpolate(x, y []float64) (function.Function, error) {
	if err := check(x, y); err != nil {
		return nil, err
	}
	return linear(x, y), nil
}

func linear(x, y []float64) function.Function {
	n := len(x)
	if n == 1 {
		return function.Constant(y[0], x[0], x[0])
	}
	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	return function.New(xs[0], xs[n-1], func(t float64) float64 {
		i := utils.Bracket(xs, t)
		w := (t - xs[i]) / (xs[i+1] - xs[i])
		return ys[i] + w*(ys[i+1]-ys[i])
	})
}
