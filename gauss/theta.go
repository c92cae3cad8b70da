package gauss

import "github.com/meenmo/lattice/tridiag"

type theta struct {
	theta float64
	step  StepFunc
}

// Theta returns the theta scheme: each step is an explicit half of weight
// theta followed by an implicit half of weight 1-theta. Boundary rows of
// the implicit system keep the boundary values.
func Theta(w float64, step StepFunc) Scheme {
	if w < 0 || w >= 1 {
		panic("gauss.Theta: theta must lie in [0, 1)")
	}
	return theta{theta: w, step: step}
}

// Implicit is the fully implicit scheme with default step variance.
func Implicit() Scheme { return Theta(0, DefaultImplicitStep()) }

// CrankNicolson is the theta = 1/2 scheme with default step variance.
func CrankNicolson() Scheme { return Theta(0.5, DefaultCrankNicolsonStep()) }

type thetaOp struct {
	steps int
	b     float64
	sys   *tridiag.System
}

func (s theta) Prepare(size int, h, variance float64) Operator {
	if size < 3 {
		return identity{}
	}
	n := steps(variance, s.step(h))
	a := variance / (2 * float64(n) * h * h)

	off := -(1 - s.theta) * a
	lower := make([]float64, size-1)
	upper := make([]float64, size-1)
	diag := make([]float64, size)
	for i := range lower {
		lower[i] = off
		upper[i] = off
	}
	for i := 1; i < size-1; i++ {
		diag[i] = 1 - 2*off
	}
	diag[0], diag[size-1] = 1, 1
	upper[0], lower[size-2] = 0, 0

	sys, err := tridiag.New(lower, diag, upper)
	if err != nil {
		panic("gauss.Theta: " + err.Error())
	}
	return thetaOp{steps: n, b: s.theta * a, sys: sys}
}

func (op thetaOp) Apply(v []float64) {
	for k := 0; k < op.steps; k++ {
		if op.b > 0 {
			explicitStep(v, op.b)
		}
		op.sys.Solve(v)
	}
}
