package approx

import (
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/interp"
)

type adapter struct {
	size        SizeFunc
	scheme      interp.Scheme
	left, right float64
	nodes       []float64
}

// FromInterp turns an interpolation scheme into an approximation scheme on
// size(right-left) evenly spaced nodes.
func FromInterp(size SizeFunc, scheme interp.Scheme) Scheme {
	return adapter{size: size, scheme: scheme}
}

func (a adapter) Bind(left, right float64) Scheme {
	n := nodeCount(a.size, left, right)
	nodes := make([]float64, n)
	if n == 1 {
		nodes[0] = 0.5 * (left + right)
	} else {
		floats.Span(nodes, left, right)
	}
	return adapter{size: a.size, scheme: a.scheme, left: left, right: right, nodes: nodes}
}

func (a adapter) Nodes() []float64 { return a.nodes }

func (a adapter) Approximate(values []float64) function.Function {
	checkValues(a.nodes, values)
	if len(values) == 1 {
		return function.Constant(values[0], a.left, a.right)
	}
	f, err := a.scheme.Interpolate(a.nodes, values)
	if err != nil {
		panic("approx.Approximate: " + err.Error())
	}
	return f
}
