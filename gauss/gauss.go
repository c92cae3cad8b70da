// Package gauss implements finite difference approximations of the
// conditional expectation operator of a Brownian motion.
//
// Values are sampled at size evenly spaced nodes with spacing h. A rollback
// of variance v replaces f by x -> E[f(x + sqrt(v) Z)], Z standard normal.
// The two boundary values are never changed, so affine functions are
// invariant under every scheme.
package gauss

import (
	"math"

	"github.com/meenmo/lattice/config"
)

// Operator applies a prepared rollback in place.
type Operator interface {
	Apply(values []float64)
}

// Scheme prepares rollbacks of a given variance on a given grid.
type Scheme interface {
	Prepare(size int, h, variance float64) Operator
}

// StepFunc returns the variance of one time step as a function of the
// node spacing.
type StepFunc func(h float64) float64

type identity struct{}

func (identity) Apply([]float64) {}

// steps returns the number of steps of variance at most step needed to
// cover variance.
func steps(variance, step float64) int {
	n := int(math.Ceil(variance / step))
	if n < 1 {
		n = 1
	}
	return n
}

// explicitStep computes v[i] = (1-2b)v[i] + b(v[i-1]+v[i+1]) on the
// interior nodes.
func explicitStep(v []float64, b float64) {
	prev := v[0]
	for i := 1; i < len(v)-1; i++ {
		cur := v[i]
		v[i] = (1-2*b)*cur + b*(prev+v[i+1])
		prev = cur
	}
}

// ---- explicit schemes ----

type explicit struct {
	coeff float64
}

// Explicit returns the explicit scheme whose steps have variance at most
// coeff*h^2, so the local averaging weight b stays below coeff/2.
func Explicit(coeff float64) Scheme {
	if coeff <= 0 || coeff > 1 {
		panic("gauss.Explicit: coefficient must lie in (0, 1]")
	}
	return explicit{coeff: coeff}
}

// Binomial is the explicit scheme of a recombining binomial tree.
func Binomial() Scheme { return Explicit(1) }

// Uniform is the explicit scheme with weights up to (1/3, 1/3, 1/3).
func Uniform() Scheme { return Explicit(2.0 / 3) }

type explicitOp struct {
	steps int
	b     float64
}

func (s explicit) Prepare(size int, h, variance float64) Operator {
	if size < 3 {
		return identity{}
	}
	n := steps(variance, s.coeff*h*h)
	return explicitOp{steps: n, b: 0.5 * (variance / float64(n)) / (h * h)}
}

func (op explicitOp) Apply(v []float64) {
	for k := 0; k < op.steps; k++ {
		explicitStep(v, op.b)
	}
}

// DefaultImplicitStep returns the implicit step variance
// config.ImplicitStep * h^2 of the active configuration.
func DefaultImplicitStep() StepFunc {
	c := config.GetConfig().ImplicitStep
	return func(h float64) float64 { return c * h * h }
}

// DefaultCrankNicolsonStep returns the Crank-Nicolson step variance
// config.CrankNicolsonStep * h of the active configuration.
func DefaultCrankNicolsonStep() StepFunc {
	c := config.GetConfig().CrankNicolsonStep
	return func(h float64) float64 { return c * h }
}
