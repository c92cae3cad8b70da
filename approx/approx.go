// Package approx provides approximation schemes: a set of nodes over an
// interval together with a procedure that reconstructs a function from its
// values at the nodes.
package approx

import (
	"math"

	"github.com/meenmo/lattice/config"
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/interp"
)

// Scheme is an approximation scheme. An unbound scheme has no nodes; Bind
// returns a new scheme laid out over [left, right] and leaves the receiver
// unchanged.
type Scheme interface {
	Bind(left, right float64) Scheme
	// Nodes returns the increasing nodes of a bound scheme. Callers must
	// not modify the slice.
	Nodes() []float64
	// Approximate reconstructs a function on [left, right] from values at
	// Nodes(). len(values) must equal len(Nodes()).
	Approximate(values []float64) function.Function
}

// SizeFunc maps the width of an interval to a node count. Fractional
// results are truncated; anything below one node means one node.
type SizeFunc func(width float64) float64

// Size is the node density used for auxiliary path-dependent states:
// one node for a degenerate interval, otherwise a count growing with the
// width and saturating at about sqrt(quality).
func Size(quality float64) SizeFunc {
	q := math.Max(quality, 3)
	return func(width float64) float64 {
		if width < 0 {
			panic("approx.Size: negative width")
		}
		if width == 0 {
			return 1
		}
		return math.Ceil(2.5 + (1+math.Sqrt(q))*width/(1+width))
	}
}

// Default returns the spline adapter with density Size(PathQuality) of the
// active configuration.
func Default() Scheme {
	return FromInterp(Size(config.GetConfig().PathQuality), interp.Spline{})
}

func nodeCount(size SizeFunc, left, right float64) int {
	if left > right {
		panic("approx.Bind: left end above right end")
	}
	if left == right {
		return 1
	}
	n := int(size(right - left))
	if n < 1 {
		n = 1
	}
	return n
}

func checkValues(nodes, values []float64) {
	if nodes == nil {
		panic("approx.Approximate: scheme is not bound")
	}
	if len(values) != len(nodes) {
		panic("approx.Approximate: values and nodes differ in length")
	}
}
