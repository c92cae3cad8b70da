package approx

import (
	"math"

	"github.com/meenmo/lattice/function"
)

type chebyshev struct {
	size        SizeFunc
	left, right float64
	nodes       []float64
}

// Chebyshev approximates by a Chebyshev polynomial through the shifted
// roots of T_n, n = size(right-left).
func Chebyshev(size SizeFunc) Scheme {
	return chebyshev{size: size}
}

func (c chebyshev) Bind(left, right float64) Scheme {
	n := nodeCount(c.size, left, right)
	nodes := make([]float64, n)
	if n == 1 {
		nodes[0] = 0.5 * (left + right)
	} else {
		a, b := 0.5*(right-left), 0.5*(right+left)
		for i := 0; i < n; i++ {
			nodes[n-1-i] = a*math.Cos(math.Pi*(float64(i)+0.5)/float64(n)) + b
		}
	}
	return chebyshev{size: c.size, left: left, right: right, nodes: nodes}
}

func (c chebyshev) Nodes() []float64 { return c.nodes }

func (c chebyshev) Approximate(values []float64) function.Function {
	checkValues(c.nodes, values)
	n := len(values)
	if n == 1 {
		return function.Constant(values[0], c.left, c.right)
	}

	coef := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for k := 0; k < n; k++ {
			sum += values[n-1-k] * math.Cos(math.Pi*float64(j)*(float64(k)+0.5)/float64(n))
		}
		coef[j] = 2 * sum / float64(n)
	}

	mid, half := 0.5*(c.right+c.left), 0.5*(c.right-c.left)
	return function.New(c.left, c.right, func(x float64) float64 {
		z := (x - mid) / half
		// Clenshaw recurrence
		b1, b2 := 0.0, 0.0
		for j := n - 1; j >= 1; j-- {
			b1, b2 = 2*z*b1-b2+coef[j], b1
		}
		return z*b1 - b2 + 0.5*coef[0]
	})
}
