// Package tridiag solves tridiagonal linear systems.
package tridiag

import (
	"fmt"

	"github.com/meenmo/lattice/numerr"
)

// System is an LU-factored tridiagonal matrix.
//
// The matrix has diagonal D, sub-diagonal L and super-diagonal U:
// row i reads L[i-1]*x[i-1] + D[i]*x[i] + U[i]*x[i+1].
type System struct {
	lower []float64
	diag  []float64
	upper []float64
}

// New factors the matrix. The vectors are copied. len(diag) must be
// positive and lower and upper must have one element less.
func New(lower, diag, upper []float64) (*System, error) {
	n := len(diag)
	if n == 0 || len(lower) != n-1 || len(upper) != n-1 {
		return nil, numerr.Size(fmt.Sprintf("tridiagonal system with %d, %d, %d elements", len(lower), n, len(upper)))
	}
	s := &System{
		lower: append([]float64(nil), lower...),
		diag:  append([]float64(nil), diag...),
		upper: append([]float64(nil), upper...),
	}
	for i := 0; i < n-1; i++ {
		s.lower[i] /= s.diag[i]
		s.diag[i+1] -= s.lower[i] * s.upper[i]
	}
	return s, nil
}

// Size returns the dimension of the system.
func (s *System) Size() int { return len(s.diag) }

// Solve overwrites x with the solution of A*y = x.
func (s *System) Solve(x []float64) {
	n := s.Size()
	if len(x) != n {
		panic("tridiag.Solve: right-hand side size mismatch")
	}
	for i := 0; i < n-1; i++ {
		x[i+1] -= s.lower[i] * x[i]
	}
	x[n-1] /= s.diag[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = (x[i] - s.upper[i]*x[i+1]) / s.diag[i]
	}
}
