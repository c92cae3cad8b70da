package interp

import (
	"github.com/meenmo/lattice/function"
	"github.com/meenmo/lattice/tridiag"
	"github.com/meenmo/lattice/utils"
)

// Spline is natural cubic spline interpolation. It needs at least three
// nodes and falls back to Linear below that.
type Spline struct{}

func (Spline) Interpolate(x, y []float64) (function.Function, error) {
	if err := check(x, y); err != nil {
		return nil, err
	}
	n := len(x)
	if n < 3 {
		return linear(x, y), nil
	}

	// Second derivatives at the interior nodes; zero at both ends.
	m := n - 2
	diag := make([]float64, m)
	off := make([]float64, m-1)
	sd := make([]float64, n)
	for i := 0; i < m; i++ {
		diag[i] = (x[i+2] - x[i]) / 3
		sd[i+1] = (y[i+2]-y[i+1])/(x[i+2]-x[i+1]) - (y[i+1]-y[i])/(x[i+1]-x[i])
		if i < m-1 {
			off[i] = (x[i+2] - x[i+1]) / 6
		}
	}
	sys, err := tridiag.New(off, diag, off)
	if err != nil {
		return nil, err
	}
	sys.Solve(sd[1 : n-1])

	xs := append([]float64(nil), x...)
	ys := append([]float64(nil), y...)
	return function.New(xs[0], xs[n-1], func(t float64) float64 {
		i := utils.Bracket(xs, t)
		dist := xs[i+1] - xs[i]
		a := (xs[i+1] - t) / dist
		b := 1 - a
		return a*ys[i] + b*ys[i+1] + ((a*a*a-a)*sd[i]+(b*b*b-b)*sd[i+1])*dist*dist/6
	}), nil
}
